package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

// Submissions is the contact and volunteer service.
type Submissions interface {
	SubmitContact(ctx context.Context, in application.ContactInput) (*entity.ContactMessage, error)
	SubmitVolunteer(ctx context.Context, in application.VolunteerInput, cv *application.Upload) (*entity.VolunteerApplication, error)
	ListContactMessages(ctx context.Context) ([]entity.ContactMessage, error)
	MarkContactRead(ctx context.Context, id string) error
	ListVolunteers(ctx context.Context) ([]entity.VolunteerApplication, error)
}

type SubmissionHandler struct {
	Svc            Submissions
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

func NewSubmissionHandler(svc Submissions, maxUploadBytes int64, logger *logrus.Logger) *SubmissionHandler {
	return &SubmissionHandler{Svc: svc, MaxUploadBytes: maxUploadBytes, Logger: logger}
}

type contactRequest struct {
	SenderName   string `json:"sender_name" binding:"required,max=200"`
	SenderEmail  string `json:"sender_email" binding:"required,email"`
	SenderPhone  string `json:"sender_phone" binding:"max=40"`
	Subject      string `json:"subject" binding:"max=300"`
	InquiryType  string `json:"inquiry_type" binding:"max=100"`
	Organization string `json:"organization" binding:"max=200"`
	Message      string `json:"message" binding:"required,max=10000"`
}

type volunteerForm struct {
	FullName      string `form:"full_name" binding:"required,max=200"`
	Email         string `form:"email" binding:"required,email"`
	Phone         string `form:"phone" binding:"max=40"`
	Skills        string `form:"skills" binding:"max=2000"`
	Availability  string `form:"availability" binding:"max=200"`
	WhyInterested string `form:"why_interested" binding:"max=5000"`
}

// SubmitContact POST /api/contact
func (h *SubmissionHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	m, err := h.Svc.SubmitContact(c.Request.Context(), application.ContactInput{
		SenderName:   req.SenderName,
		SenderEmail:  req.SenderEmail,
		SenderPhone:  req.SenderPhone,
		Subject:      req.Subject,
		InquiryType:  req.InquiryType,
		Organization: req.Organization,
		Message:      req.Message,
	})
	if err != nil {
		serviceError(c, h.Logger, err, "submit contact message")
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"id": m.ID}, "message received", nil)
}

// SubmitVolunteer POST /api/volunteers (multipart, optional "cv" file)
func (h *SubmissionHandler) SubmitVolunteer(c *gin.Context) {
	limitBody(c, h.MaxUploadBytes)
	var form volunteerForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	cv, closeCV, err := formFile(c, "cv")
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeCV()

	v, err := h.Svc.SubmitVolunteer(c.Request.Context(), application.VolunteerInput{
		FullName:      form.FullName,
		Email:         form.Email,
		Phone:         form.Phone,
		Skills:        form.Skills,
		Availability:  form.Availability,
		WhyInterested: form.WhyInterested,
	}, cv)
	if err != nil {
		serviceError(c, h.Logger, err, "submit volunteer application")
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"id": v.ID}, "application received", nil)
}

func (h *SubmissionHandler) ListContactMessages(c *gin.Context) {
	msgs, err := h.Svc.ListContactMessages(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "list contact messages")
		return
	}
	response.Success(c, http.StatusOK, msgs, "contact messages", gin.H{"count": len(msgs)})
}

// MarkContactRead PATCH /api/admin/contact/:id/read
func (h *SubmissionHandler) MarkContactRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.MarkContactRead(c.Request.Context(), id); err != nil {
		serviceError(c, h.Logger, err, "mark contact message read")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"is_read": true}, "marked as read", nil)
}

func (h *SubmissionHandler) ListVolunteers(c *gin.Context) {
	vols, err := h.Svc.ListVolunteers(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "list volunteers")
		return
	}
	response.Success(c, http.StatusOK, vols, "volunteers", gin.H{"count": len(vols)})
}
