package handlers

import (
	"net/http"

	"github.com/northpeak-studio/site-api/internal/api/dto/v1/contact"
	"github.com/northpeak-studio/site-api/internal/api/sanitization"
	"github.com/northpeak-studio/site-api/internal/api/validation"
	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/service"
	"github.com/northpeak-studio/site-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// minMessageLength is measured after sanitization
const minMessageLength = 10

type ContactHandler struct {
	logger       *logging.Logger
	csrfService  service.CSRFService
	relayService *service.RelayService
}

func NewContactHandler(csrfService service.CSRFService, relayService *service.RelayService) *ContactHandler {
	return &ContactHandler{
		logger:       logging.GetGlobalLogger(),
		csrfService:  csrfService,
		relayService: relayService,
	}
}

// Token issues the double-submit CSRF cookie and returns its value so the
// frontend can echo it in the X-CSRF-Token header.
func (h *ContactHandler) Token(c *gin.Context) {
	token, err := h.csrfService.IssueCookie(c)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	utils.HandleToken(c, token)
}

// Submit processes a contact form submission. Rate limiting and CSRF
// validation run as route middleware before this handler; every remaining
// step short-circuits on first failure.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleAPIError(c, err, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Presence validation before any sanitization
	if req.Name == "" || req.Email == "" || req.ProjectType == "" || req.Message == "" {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "All fields are required")
		return
	}

	// Honeypot: the field is hidden from humans, so any value means a bot.
	// The response deliberately does not reveal which check fired.
	if req.Botcheck != "" {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "Spam detected")
		return
	}

	name := sanitization.SanitizeString(req.Name)
	projectType := sanitization.SanitizeString(req.ProjectType)
	message := sanitization.SanitizeString(req.Message)
	email := sanitization.SanitizeEmail(req.Email)

	if name == "" || projectType == "" || message == "" || email == "" {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "All fields are required")
		return
	}

	if !validation.IsValidEmail(email) {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "Invalid email address")
		return
	}

	if len(message) < minMessageLength {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, "Message must be at least 10 characters")
		return
	}

	if err := h.relayService.SendContactMessage(name, email, projectType, message); err != nil {
		if relayErr, ok := err.(*service.RelayError); ok && relayErr.Message != "" {
			utils.HandleAPIError(c, err, http.StatusInternalServerError, relayErr.Message)
			return
		}
		utils.HandleAPIError(c, err, http.StatusInternalServerError, "Failed to send message")
		return
	}

	// Rotate the token so it cannot be replayed across submissions
	if err := h.csrfService.RotateCookie(c); err != nil {
		h.logger.Error("failed to rotate CSRF token: %v", err)
	}

	utils.HandleSuccess(c, "Message sent successfully. We'll get back to you shortly.")
}
