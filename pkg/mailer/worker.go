package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabnifoundation/rabni-api/pkg/mailer/templates"
)

// Verdict tells the queue consumer how to settle a delivery.
type Verdict int

const (
	Ack Verdict = iota
	// Drop nacks without requeue; the payload can never be delivered.
	Drop
	// Requeue nacks with requeue; the send may succeed later.
	Requeue
)

type Sender interface {
	Send(ctx context.Context, to, replyTo, subject, text, html string) error
}

// Process decodes one queued notification, renders its template when it
// names one, and sends it.
func Process(ctx context.Context, s Sender, body []byte) (Verdict, error) {
	var job NotificationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Drop, err
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return Drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
	}

	if err := s.Send(ctx, job.To, job.ReplyTo, subject, text, html); err != nil {
		return Requeue, fmt.Errorf("send: %w", err)
	}
	return Ack, nil
}
