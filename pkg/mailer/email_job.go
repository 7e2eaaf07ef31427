package mailer

import "errors"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or a literal Subject/Text is required; HTML is optional.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "new_comment"
	Data     map[string]any `json:"data,omitempty"`
}

var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrNoBody      = errors.New("email job has neither template nor text")
)

// Validate reports whether the job can be delivered at all.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return ErrNoRecipient
	}
	if j.Template == "" && (j.Subject == "" || j.Text == "") {
		return ErrNoBody
	}
	return nil
}
