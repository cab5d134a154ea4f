package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabnifoundation/rabni-api/pkg/mailer/templates"
)

type sent struct {
	to, replyTo, subject, text, html string
}

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(ctx context.Context, to, replyTo, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, replyTo, subject, text, html})
	return nil
}

func encode(t *testing.T, job NotificationJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessRendersQueuedTemplate(t *testing.T) {
	data := templates.NewVolunteerApplicationData(templates.Brand{CompanyName: "RABNI Foundation"}, "staff@rabni.org",
		templates.WithSender("Musa Bello", "musa@example.com", ""),
		templates.WithVolunteer("Teaching", "Weekends", "I want to help.", ""),
	)
	s := &fakeSender{}
	v, err := Process(context.Background(), s, encode(t, NotificationJob{
		To: "staff@rabni.org", ReplyTo: "musa@example.com", Template: templates.VolunteerApplication, Data: data,
	}))

	require.NoError(t, err)
	assert.Equal(t, Ack, v)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "New volunteer application from Musa Bello", s.sent[0].subject)
	assert.Equal(t, "musa@example.com", s.sent[0].replyTo)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestProcessSendsPrerenderedJob(t *testing.T) {
	s := &fakeSender{}
	v, err := Process(context.Background(), s, encode(t, NotificationJob{To: "a@b.org", Subject: "hi", Text: "body"}))
	require.NoError(t, err)
	assert.Equal(t, Ack, v)
	assert.Equal(t, sent{to: "a@b.org", subject: "hi", text: "body"}, s.sent[0])
}

func TestProcessVerdicts(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		err  error
		want Verdict
	}{
		{name: "garbage", body: []byte("not json"), want: Drop},
		{name: "no recipient", body: encode(t, NotificationJob{Subject: "x"}), want: Drop},
		{name: "no content", body: encode(t, NotificationJob{To: "a@b.org"}), want: Drop},
		{name: "unknown template", body: encode(t, NotificationJob{To: "a@b.org", Template: "newsletter"}), want: Drop},
		{name: "send fails", body: encode(t, NotificationJob{To: "a@b.org", Subject: "x"}), err: errors.New("mailgun 503"), want: Requeue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Process(context.Background(), &fakeSender{err: tt.err}, tt.body)
			assert.Error(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
