package webhook

// CalendlyEvent is the envelope Calendly delivers for every webhook.
// Only the fields the handler consumes are declared; unknown fields are
// ignored by the JSON decoder.
type CalendlyEvent struct {
	Event   string          `json:"event" validate:"required"`
	Payload CalendlyPayload `json:"payload" validate:"required"`
}

// CalendlyPayload carries the scheduled-event details for invitee events.
type CalendlyPayload struct {
	EventType CalendlyEventType `json:"event_type" validate:"required"`
	Event     CalendlyMeeting   `json:"event" validate:"required"`
	Invitee   CalendlyInvitee   `json:"invitee" validate:"required"`
}

// CalendlyEventType describes the booked meeting type.
type CalendlyEventType struct {
	Name     string `json:"name" validate:"required"`
	Duration int    `json:"duration"`
}

// CalendlyMeeting describes the booked slot.
type CalendlyMeeting struct {
	StartTime string `json:"start_time" validate:"required,iso8601"`
	EndTime   string `json:"end_time" validate:"required,iso8601"`
	Location  string `json:"location"`
}

// CalendlyInvitee describes the person who booked.
type CalendlyInvitee struct {
	Name               string           `json:"name" validate:"required"`
	Email              string           `json:"email" validate:"required,email"`
	TextReminderNumber string           `json:"text_reminder_number"`
	QuestionsAnswers   []QuestionAnswer `json:"questions_and_answers" validate:"omitempty,dive"`
}

// QuestionAnswer is one entry of the booking form's custom questions.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WebhookStatus is returned by the GET health probe on the webhook route.
// Booleans only; secret values are never echoed.
type WebhookStatus struct {
	Status            string `json:"status"`
	SigningKeyPresent bool   `json:"signing_key_present"`
	EmailKeyPresent   bool   `json:"email_key_present"`
}
