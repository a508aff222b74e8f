package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/northpeak-studio/site-api/internal/api/dto/common"
	"github.com/northpeak-studio/site-api/internal/api/dto/v1/webhook"
	"github.com/northpeak-studio/site-api/internal/api/middleware"
	"github.com/northpeak-studio/site-api/internal/api/validation"
	"github.com/northpeak-studio/site-api/internal/dedup"
	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/service"
	"github.com/northpeak-studio/site-api/internal/signature"
	"github.com/northpeak-studio/site-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const signatureHeader = "Calendly-Webhook-Signature"

type WebhookHandler struct {
	logger          *logging.Logger
	signingKey      string
	production      bool
	validate        *validator.Validate
	dedupStore      dedup.Store
	relayService    *service.RelayService
	contactsService *service.ContactsService
}

func NewWebhookHandler(signingKey string, production bool, dedupStore dedup.Store, relayService *service.RelayService, contactsService *service.ContactsService) *WebhookHandler {
	validate := validator.New()
	validation.RegisterValidators(validate)

	return &WebhookHandler{
		logger:          logging.GetGlobalLogger(),
		signingKey:      signingKey,
		production:      production,
		validate:        validate,
		dedupStore:      dedupStore,
		relayService:    relayService,
		contactsService: contactsService,
	}
}

// Status reports webhook configuration as booleans. Secrets are never echoed.
func (h *WebhookHandler) Status(c *gin.Context) {
	emailKeyPresent := h.relayService != nil && h.relayService.Configured()

	c.JSON(http.StatusOK, webhook.WebhookStatus{
		Status:            "ok",
		SigningKeyPresent: h.signingKey != "",
		EmailKeyPresent:   emailKeyPresent,
	})
}

// CalendlyWebhook handles Calendly event deliveries.
// Once the signature, schema, event type and duplicate checks pass, the
// handler always acknowledges with 200; downstream notification failures
// are logged but never surfaced to the sender.
func (h *WebhookHandler) CalendlyWebhook(c *gin.Context) {
	// Signature verification is mandatory in production. Without a key
	// there is nothing to verify against, so fail closed before touching
	// the payload.
	if h.signingKey == "" {
		if h.production {
			utils.HandleAPIError(c, nil, http.StatusServiceUnavailable, "Webhook signing key not configured")
			return
		}
		h.logger.Warn("No webhook signing key configured, skipping signature verification")
	}

	rawBody, ok := middleware.RawBody(c)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "Failed to read payload")
		return
	}

	if h.signingKey != "" {
		header := c.GetHeader(signatureHeader)
		if err := signature.Verify(header, rawBody, []byte(h.signingKey), time.Now()); err != nil {
			utils.HandleAPIError(c, err, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	var event webhook.CalendlyEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		utils.HandleAPIError(c, err, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&event); err != nil {
		// Log field paths and counts only, never values
		fieldErrors := validation.FormatValidationError(err)
		h.logger.Error("webhook payload failed validation: %d field(s): %v", len(fieldErrors), fieldErrors)
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid payload"))
		return
	}

	// Acknowledge-and-ignore everything except new bookings so the
	// sender does not retry event types we have no use for.
	if event.Event != "invitee.created" {
		utils.HandleSuccess(c, "Event type ignored")
		return
	}

	invitee := event.Payload.Invitee
	meeting := event.Payload.Event

	// The dedup entry is written before the downstream calls on purpose:
	// a crash mid-fan-out must not cause a retried delivery to notify
	// twice. The notification lost in that crash is not retried.
	eventID := dedup.EventKey(invitee.Email, meeting.StartTime)
	if !h.dedupStore.MarkSeen(eventID) {
		utils.HandleSuccess(c, "Duplicate event, already processed")
		return
	}

	phone, company := extractInviteeDetails(invitee)

	// Best-effort fan-out. Each call has its own error boundary so a
	// failure in one cannot affect the other or the response.
	go func() {
		if err := h.contactsService.SaveBookingContact(
			invitee.Name,
			invitee.Email,
			phone,
			company,
			"Booked via Calendly: "+event.Payload.EventType.Name,
		); err != nil {
			h.logger.Error("failed to save booking contact: %v", err)
		}
	}()

	go func() {
		if err := h.relayService.SendBookingNotification(
			invitee.Name,
			invitee.Email,
			event.Payload.EventType.Name,
			meeting.StartTime,
			phone,
			company,
		); err != nil {
			h.logger.Error("failed to send booking notification: %v", err)
		}
	}()

	utils.HandleSuccess(c, "Webhook processed")
}

// extractInviteeDetails scans the booking form answers for phone and company
// information. Heuristic by necessity: question wording is configured by
// hand in Calendly.
func extractInviteeDetails(invitee webhook.CalendlyInvitee) (phone, company string) {
	for _, qa := range invitee.QuestionsAnswers {
		question := strings.ToLower(qa.Question)
		answer := strings.TrimSpace(qa.Answer)
		if answer == "" {
			continue
		}

		if phone == "" && (strings.Contains(question, "phone") || strings.Contains(question, "mobile") || strings.Contains(question, "cell")) {
			phone = answer
			continue
		}
		if company == "" && (strings.Contains(question, "company") || strings.Contains(question, "organization") || strings.Contains(question, "business")) {
			company = answer
		}
	}

	if phone == "" {
		phone = strings.TrimSpace(invitee.TextReminderNumber)
	}

	return phone, company
}
