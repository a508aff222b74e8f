package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RelayService sends formatted messages through the external email-relay API
type RelayService struct {
	apiURL    string
	accessKey string
	toEmail   string
	fromEmail string
	client    *http.Client
}

// NewRelayService creates a new email relay service
func NewRelayService(apiURL, accessKey, toEmail, fromEmail string) *RelayService {
	return &RelayService{
		apiURL:    apiURL,
		accessKey: accessKey,
		toEmail:   toEmail,
		fromEmail: fromEmail,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether the relay has an access key to send with
func (s *RelayService) Configured() bool {
	return s.accessKey != ""
}

// relayRequest is the payload shape the email-relay API accepts
type relayRequest struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
	Message   string `json:"message"`
	ReplyTo   string `json:"replyto,omitempty"`
}

// relayResponse is the envelope the email-relay API returns
type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RelayError carries the relay's own error message when it provides one,
// so the contact handler can surface it to the caller.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("email relay returned status %d", e.StatusCode)
}

// SendContactMessage forwards a sanitized contact form submission.
// All field values must already be sanitized by the caller.
func (s *RelayService) SendContactMessage(name, email, projectType, message string) error {
	if s.accessKey == "" {
		return fmt.Errorf("email relay access key not configured")
	}

	subject := fmt.Sprintf("New inquiry: %s", projectType)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nProject type: %s\n\n%s",
		name, email, projectType, message,
	)

	return s.send(relayRequest{
		AccessKey: s.accessKey,
		Subject:   subject,
		FromName:  name,
		FromEmail: s.fromEmail,
		ToEmail:   s.toEmail,
		Message:   body,
		ReplyTo:   email,
	})
}

// SendBookingNotification sends a formatted note about a new Calendly booking
func (s *RelayService) SendBookingNotification(inviteeName, inviteeEmail, eventName, startTime, phone, company string) error {
	if s.accessKey == "" {
		return fmt.Errorf("email relay access key not configured")
	}

	body := fmt.Sprintf(
		"New booking: %s\n\nInvitee: %s\nEmail: %s\nStarts: %s",
		eventName, inviteeName, inviteeEmail, startTime,
	)
	if phone != "" {
		body += fmt.Sprintf("\nPhone: %s", phone)
	}
	if company != "" {
		body += fmt.Sprintf("\nCompany: %s", company)
	}

	return s.send(relayRequest{
		AccessKey: s.accessKey,
		Subject:   fmt.Sprintf("New booking: %s", eventName),
		FromName:  inviteeName,
		FromEmail: s.fromEmail,
		ToEmail:   s.toEmail,
		Message:   body,
		ReplyTo:   inviteeEmail,
	})
}

func (s *RelayService) send(payload relayRequest) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal relay request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach email relay: %w", err)
	}
	defer resp.Body.Close()

	var relayResp relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&relayResp); err != nil {
		// Non-JSON body; fall back to the status code alone
		if resp.StatusCode != http.StatusOK {
			return &RelayError{StatusCode: resp.StatusCode}
		}
		return nil
	}

	if resp.StatusCode != http.StatusOK || !relayResp.Success {
		return &RelayError{StatusCode: resp.StatusCode, Message: relayResp.Message}
	}

	return nil
}
