package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
)

type fakeSubmissions struct {
	err       error
	contact   application.ContactInput
	volunteer application.VolunteerInput
	cvName    string
	cvBody    string
	readID    string
}

func (f *fakeSubmissions) SubmitContact(ctx context.Context, in application.ContactInput) (*entity.ContactMessage, error) {
	f.contact = in
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ContactMessage{ID: "m1"}, nil
}

func (f *fakeSubmissions) SubmitVolunteer(ctx context.Context, in application.VolunteerInput, cv *application.Upload) (*entity.VolunteerApplication, error) {
	f.volunteer = in
	if cv != nil {
		b, _ := io.ReadAll(cv.Body)
		f.cvName, f.cvBody = cv.Filename, string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.VolunteerApplication{ID: "v1"}, nil
}

func (f *fakeSubmissions) ListContactMessages(ctx context.Context) ([]entity.ContactMessage, error) {
	return []entity.ContactMessage{{ID: "m1"}, {ID: "m2"}}, f.err
}

func (f *fakeSubmissions) MarkContactRead(ctx context.Context, id string) error {
	f.readID = id
	return f.err
}

func (f *fakeSubmissions) ListVolunteers(ctx context.Context) ([]entity.VolunteerApplication, error) {
	return nil, f.err
}

func submissionEngine(svc *fakeSubmissions) *gin.Engine {
	h := NewSubmissionHandler(svc, 1<<20, nil)
	r := gin.New()
	r.POST("/contact", h.SubmitContact)
	r.POST("/volunteers", h.SubmitVolunteer)
	r.GET("/admin/contact", h.ListContactMessages)
	r.PATCH("/admin/contact/:id/read", h.MarkContactRead)
	return r
}

func TestSubmitContact(t *testing.T) {
	svc := &fakeSubmissions{}
	w := serve(submissionEngine(svc), jsonRequest(http.MethodPost, "/contact", map[string]string{
		"sender_name": "Amina Bello", "sender_email": "amina@example.org", "inquiry_type": "Partnership", "message": "Hello",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Partnership", svc.contact.InquiryType)
	assert.JSONEq(t, `{"id":"m1"}`, string(decode(t, w).Data))
}

func TestSubmitContactValidates(t *testing.T) {
	w := serve(submissionEngine(&fakeSubmissions{}), jsonRequest(http.MethodPost, "/contact", map[string]string{
		"sender_name": "Amina", "sender_email": "amina-at-example", "message": "",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "must be a valid email", env.Error["sender_email"])
	assert.Equal(t, "is required", env.Error["message"])
}

func TestSubmitContactWrongJSONType(t *testing.T) {
	req := jsonRequest(http.MethodPost, "/contact", nil)
	req.Body = io.NopCloser(strings.NewReader(`{"sender_name": 5}`))
	w := serve(submissionEngine(&fakeSubmissions{}), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", decode(t, w).Error["payload"])
}

func TestSubmitVolunteerWithCV(t *testing.T) {
	svc := &fakeSubmissions{}
	req := multipartRequest(t, http.MethodPost, "/volunteers", map[string]string{
		"full_name": "Chidi Okafor", "email": "chidi@example.org", "skills": "Teaching",
	}, &filePart{field: "cv", name: "cv.pdf", body: "resume"})
	w := serve(submissionEngine(svc), req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Chidi Okafor", svc.volunteer.FullName)
	assert.Equal(t, "cv.pdf", svc.cvName)
	assert.Equal(t, "resume", svc.cvBody)
}

func TestSubmitVolunteerWithoutCV(t *testing.T) {
	svc := &fakeSubmissions{}
	req := multipartRequest(t, http.MethodPost, "/volunteers", map[string]string{
		"full_name": "Chidi Okafor", "email": "chidi@example.org",
	}, nil)
	w := serve(submissionEngine(svc), req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, svc.cvName)
}

func TestSubmitVolunteerStoreFailure(t *testing.T) {
	svc := &fakeSubmissions{err: errors.New("insert failed")}
	req := multipartRequest(t, http.MethodPost, "/volunteers", map[string]string{
		"full_name": "Chidi Okafor", "email": "chidi@example.org",
	}, nil)
	w := serve(submissionEngine(svc), req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "submit volunteer application failed", decode(t, w).Message)
}

func TestMarkContactRead(t *testing.T) {
	svc := &fakeSubmissions{}
	id := "5b1f0c9e-7a2d-4c3b-b8e4-2d6f1a0c9e7b"
	w := serve(submissionEngine(svc), jsonRequest(http.MethodPatch, "/admin/contact/"+id+"/read", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.readID)

	svc.err = application.ErrNotFound
	w = serve(submissionEngine(svc), jsonRequest(http.MethodPatch, "/admin/contact/"+id+"/read", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkContactReadMalformedID(t *testing.T) {
	svc := &fakeSubmissions{}
	w := serve(submissionEngine(svc), jsonRequest(http.MethodPatch, "/admin/contact/m7/read", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, svc.readID)
}

func TestListContactMessagesCount(t *testing.T) {
	w := serve(submissionEngine(&fakeSubmissions{}), jsonRequest(http.MethodGet, "/admin/contact", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, string(decode(t, w).Meta))
}
