package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ContactsService pushes booking contact info to the external contacts store
type ContactsService struct {
	apiURL string
	client *http.Client
}

// NewContactsService creates a new contacts store client
func NewContactsService(apiURL string) *ContactsService {
	return &ContactsService{
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// contactRecord is the payload shape the contacts-store API accepts
type contactRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes"`
}

// SaveBookingContact records an invitee in the contacts store.
// Best effort: callers log failures and move on.
func (s *ContactsService) SaveBookingContact(name, email, phone, company, notes string) error {
	if s.apiURL == "" {
		return fmt.Errorf("contacts store URL not configured")
	}

	jsonData, err := json.Marshal(contactRecord{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: company,
		Notes:   notes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal contact record: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create contacts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach contacts store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("contacts store returned status %d", resp.StatusCode)
	}

	return nil
}
