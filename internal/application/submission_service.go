package application

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	repo "github.com/rabnifoundation/rabni-api/internal/domain/repository"
	"github.com/rabnifoundation/rabni-api/pkg/mailer"
	mailtpl "github.com/rabnifoundation/rabni-api/pkg/mailer/templates"
)

// Publisher puts a JSON message on the notification queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ContactInput struct {
	SenderName   string
	SenderEmail  string
	SenderPhone  string
	Subject      string
	InquiryType  string
	Organization string
	Message      string
}

type VolunteerInput struct {
	FullName      string
	Email         string
	Phone         string
	Skills        string
	Availability  string
	WhyInterested string
}

type SubmissionService struct {
	Contacts   repo.ContactRepository
	Volunteers repo.VolunteerRepository
	Objects    ObjectStore
	Publisher  Publisher
	NotifyTo   string
	Brand      mailtpl.Brand
	Logger     *logrus.Logger

	now func() time.Time
}

func NewSubmissionService(contacts repo.ContactRepository, volunteers repo.VolunteerRepository, objects ObjectStore, pub Publisher, notifyTo string, brand mailtpl.Brand, logger *logrus.Logger) *SubmissionService {
	return &SubmissionService{
		Contacts:   contacts,
		Volunteers: volunteers,
		Objects:    objects,
		Publisher:  pub,
		NotifyTo:   notifyTo,
		Brand:      brand,
		Logger:     logger,
		now:        time.Now,
	}
}

var validate = validator.New()

func validEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func (s *SubmissionService) SubmitContact(ctx context.Context, in ContactInput) (*entity.ContactMessage, error) {
	in.SenderName = strings.TrimSpace(in.SenderName)
	in.SenderEmail = strings.TrimSpace(in.SenderEmail)
	switch {
	case in.SenderName == "":
		return nil, invalid("sender_name is required")
	case !validEmail(in.SenderEmail):
		return nil, invalid("sender_email must be a valid email")
	case strings.TrimSpace(in.Message) == "":
		return nil, invalid("message is required")
	}
	m := &entity.ContactMessage{
		SenderName:   in.SenderName,
		SenderEmail:  in.SenderEmail,
		SenderPhone:  strings.TrimSpace(in.SenderPhone),
		Subject:      strings.TrimSpace(in.Subject),
		InquiryType:  strings.TrimSpace(in.InquiryType),
		Organization: strings.TrimSpace(in.Organization),
		Message:      in.Message,
	}
	if err := s.Contacts.Create(ctx, m); err != nil {
		return nil, err
	}
	s.notify(ctx, mailer.NotificationJob{
		To:       s.NotifyTo,
		ReplyTo:  m.SenderEmail,
		Template: mailtpl.ContactMessage,
		Data: mailtpl.NewContactMessageData(s.Brand, s.NotifyTo,
			mailtpl.WithSender(m.SenderName, m.SenderEmail, m.SenderPhone),
			mailtpl.WithMessage(m.Subject, m.InquiryType, m.Organization, m.Message),
			mailtpl.WithTime(m.CreatedAt),
		),
	})
	return m, nil
}

var whitespace = regexp.MustCompile(`\s+`)

func (s *SubmissionService) cvObjectPath(fullName, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	name := unsafeName.ReplaceAllString(whitespace.ReplaceAllString(fullName, "_"), "")
	if strings.Trim(name, "_.-") == "" {
		name = "applicant"
	}
	return fmt.Sprintf("cvs/%s_%d.%s", name, s.now().UnixMilli(), ext)
}

// SubmitVolunteer stores an application. The CV is optional.
func (s *SubmissionService) SubmitVolunteer(ctx context.Context, in VolunteerInput, cv *Upload) (*entity.VolunteerApplication, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FullName == "" {
		return nil, invalid("full_name is required")
	}
	if !validEmail(in.Email) {
		return nil, invalid("email must be a valid email")
	}
	v := &entity.VolunteerApplication{
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         strings.TrimSpace(in.Phone),
		Skills:        strings.TrimSpace(in.Skills),
		Availability:  strings.TrimSpace(in.Availability),
		WhyInterested: strings.TrimSpace(in.WhyInterested),
	}
	if cv != nil {
		url, err := s.Objects.Upload(ctx, s.cvObjectPath(v.FullName, cv.Filename), cv.ContentType, cv.Body)
		if err != nil {
			return nil, err
		}
		v.CVURL = url
	}
	if err := s.Volunteers.Create(ctx, v); err != nil {
		if v.CVURL != "" {
			if dErr := s.Objects.Delete(ctx, v.CVURL); dErr != nil && s.Logger != nil {
				s.Logger.WithError(dErr).WithField("url", v.CVURL).Warn("cv cleanup failed")
			}
		}
		return nil, err
	}
	s.notify(ctx, mailer.NotificationJob{
		To:       s.NotifyTo,
		ReplyTo:  v.Email,
		Template: mailtpl.VolunteerApplication,
		Data: mailtpl.NewVolunteerApplicationData(s.Brand, s.NotifyTo,
			mailtpl.WithSender(v.FullName, v.Email, v.Phone),
			mailtpl.WithVolunteer(v.Skills, v.Availability, v.WhyInterested, v.CVURL),
			mailtpl.WithTime(v.CreatedAt),
		),
	})
	return v, nil
}

func (s *SubmissionService) ListContactMessages(ctx context.Context) ([]entity.ContactMessage, error) {
	return s.Contacts.List(ctx, 0)
}

func (s *SubmissionService) MarkContactRead(ctx context.Context, id string) error {
	return s.Contacts.MarkRead(ctx, id)
}

func (s *SubmissionService) ListVolunteers(ctx context.Context) ([]entity.VolunteerApplication, error) {
	return s.Volunteers.List(ctx, 0)
}

// notify never fails the submission; the record is already stored.
func (s *SubmissionService) notify(ctx context.Context, job mailer.NotificationJob) {
	if s.Publisher == nil || job.To == "" {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("publish notification failed")
	}
}
