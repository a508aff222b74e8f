package contact

// ContactRequest represents an incoming contact form submission.
// Botcheck is a honeypot field hidden from human visitors; any non-empty
// value marks the submission as automated.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	Message     string `json:"message"`
	Botcheck    string `json:"botcheck"`
}
