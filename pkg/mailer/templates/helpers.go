package templates

import (
	"strings"
	"time"
)

// Brand carries the organisation details every notification footer shows.
type Brand struct {
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	DashboardURL   string
}

// Option pattern
type Option func(*NotificationData)

func WithTime(t time.Time) Option {
	return func(d *NotificationData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSender(name, email, phone string) Option {
	return func(d *NotificationData) {
		d.Name = strings.TrimSpace(name)
		d.Email = strings.TrimSpace(email)
		d.Phone = strings.TrimSpace(phone)
	}
}

func WithMessage(subject, inquiryType, organization, message string) Option {
	return func(d *NotificationData) {
		d.Subject = subject
		d.InquiryType = inquiryType
		d.Organization = organization
		d.Message = message
	}
}

func WithVolunteer(skills, availability, why, cvURL string) Option {
	return func(d *NotificationData) {
		d.Skills = skills
		d.Availability = availability
		d.WhyInterested = why
		d.CVURL = cvURL
	}
}

// NewBaseData fills the brand fields, then applies opts.
func NewBaseData(b Brand, typ, recipient string, opts ...Option) NotificationData {
	d := NotificationData{
		Type:           typ,
		RecipientEmail: recipient,
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		LogoURL:        b.LogoURL,
		DashboardURL:   b.DashboardURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewContactMessageData(b Brand, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseData(b, ContactMessage, recipient, opts...))
}

func NewVolunteerApplicationData(b Brand, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseData(b, VolunteerApplication, recipient, opts...))
}
