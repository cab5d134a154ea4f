package mailer

// NotificationJob is the JSON payload put on the RabbitMQ queue whenever a
// visitor submits something the foundation staff should hear about.
// Subject/Text/HTML may be sent pre-rendered; otherwise Template and Data are
// rendered by the worker.
type NotificationJob struct {
	To       string         `json:"to"`
	ReplyTo  string         `json:"reply_to,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "contact_message" or "volunteer_application"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate reports whether the job can be delivered at all.
func (j NotificationJob) Validate() error {
	if j.To == "" {
		return ErrNoRecipient
	}
	if j.Template == "" && j.Subject == "" {
		return ErrNoContent
	}
	return nil
}
