package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/northpeak-studio/site-api/internal/signature"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Exercise a running instance",
}

var testContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Submit a test contact form message",
	Long: `Fetches a CSRF token from the running instance, then submits a test
contact form message through the full pipeline (rate limit, CSRF,
sanitization, relay).`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL, _ := cmd.Flags().GetString("url")

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Submitting test contact message..."
		s.Start()

		err := runContactTest(baseURL)
		s.Stop()

		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Contact submission accepted")
	},
}

var testWebhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Deliver a signed test Calendly webhook",
	Long: `Builds a sample invitee.created payload, signs it with the given
key, and posts it to the webhook endpoint. Run twice to observe the
duplicate acknowledgement.`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL, _ := cmd.Flags().GetString("url")
		key, _ := cmd.Flags().GetString("signing-key")
		if key == "" {
			key = os.Getenv("CALENDLY_WEBHOOK_SIGNING_KEY")
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Delivering test webhook..."
		s.Start()

		message, err := runWebhookTest(baseURL, key)
		s.Stop()

		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s\n", message)
	},
}

func init() {
	testContactCmd.Flags().String("url", "http://localhost:8080", "Base URL of the running instance")
	testWebhookCmd.Flags().String("url", "http://localhost:8080", "Base URL of the running instance")
	testWebhookCmd.Flags().String("signing-key", "", "Webhook signing key (defaults to CALENDLY_WEBHOOK_SIGNING_KEY)")

	testCmd.AddCommand(testContactCmd)
	testCmd.AddCommand(testWebhookCmd)
}

func runContactTest(baseURL string) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 15 * time.Second, Jar: jar}

	// Fetch the CSRF token; the cookie lands in the jar
	resp, err := client.Get(baseURL + "/api/v1/contact/token")
	if err != nil {
		return fmt.Errorf("failed to fetch CSRF token: %w", err)
	}
	defer resp.Body.Close()

	var tokenResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if !tokenResp.Success || tokenResp.Token == "" {
		return fmt.Errorf("token endpoint returned no token")
	}

	payload, err := json.Marshal(map[string]string{
		"name":        "CLI Test",
		"email":       "cli-test@northpeak.studio",
		"projectType": "Diagnostics",
		"message":     "This is a test submission from the siteapi CLI.",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/contact", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", tokenResp.Token)

	resp, err = client.Do(req)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submission rejected with status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func runWebhookTest(baseURL, key string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	now := time.Now()
	payload, err := json.Marshal(map[string]interface{}{
		"event": "invitee.created",
		"payload": map[string]interface{}{
			"event_type": map[string]interface{}{
				"name":     "Intro Call",
				"duration": 30,
			},
			"event": map[string]interface{}{
				"start_time": now.Add(48 * time.Hour).Format(time.RFC3339),
				"end_time":   now.Add(48*time.Hour + 30*time.Minute).Format(time.RFC3339),
				"location":   "Google Meet",
			},
			"invitee": map[string]interface{}{
				"name":  "CLI Test",
				"email": "cli-test@northpeak.studio",
			},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/webhooks/calendly", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		ts := now.Unix()
		req.Header.Set("Calendly-Webhook-Signature",
			fmt.Sprintf("t=%d,v1=%s", ts, signature.Compute([]byte(key), ts, payload)))
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("delivery failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("delivery rejected with status %d: %s", resp.StatusCode, body)
	}

	var ack struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &ack); err != nil || ack.Message == "" {
		return "webhook acknowledged", nil
	}
	return ack.Message, nil
}
