package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   map[string]any  `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type filePart struct {
	field, name, body string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, file.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// fakeContent mirrors the service's file rules and records what it received.
type fakeContent struct {
	err         error
	gotGallery  application.GalleryInput
	gotReport   application.ReportInput
	gotFileName string
	gotFileBody string
	posts       []entity.BlogPost
}

func (f *fakeContent) take(file *application.Upload) error {
	if file == nil {
		return application.ErrFileRequired
	}
	b, err := io.ReadAll(file.Body)
	if err != nil {
		return err
	}
	f.gotFileName, f.gotFileBody = file.Filename, string(b)
	return nil
}

func (f *fakeContent) ListPosts(ctx context.Context) ([]entity.BlogPost, error) { return f.posts, f.err }
func (f *fakeContent) SearchPosts(ctx context.Context, q string, size int) ([]entity.BlogPost, error) {
	return f.posts, f.err
}
func (f *fakeContent) CreatePost(ctx context.Context, in application.PostInput) (*entity.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.BlogPost{ID: "p1", Title: in.Title, Content: in.Content}, nil
}
func (f *fakeContent) UpdatePost(ctx context.Context, id string, in application.PostInput) (*entity.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.BlogPost{ID: id, Title: in.Title, Content: in.Content}, nil
}
func (f *fakeContent) DeletePost(ctx context.Context, id string) error { return f.err }

func (f *fakeContent) ListGallery(ctx context.Context, category string) ([]entity.GalleryItem, error) {
	if category == "Parties" {
		return nil, fmtInvalid("unknown category")
	}
	return nil, f.err
}
func (f *fakeContent) CreateGalleryItem(ctx context.Context, in application.GalleryInput, file *application.Upload) (*entity.GalleryItem, error) {
	f.gotGallery = in
	if err := f.take(file); err != nil {
		return nil, err
	}
	return &entity.GalleryItem{ID: "g1", Title: in.Title, MediaType: in.MediaType, Category: in.Category}, f.err
}
func (f *fakeContent) UpdateGalleryItem(ctx context.Context, id string, in application.GalleryInput, file *application.Upload) (*entity.GalleryItem, error) {
	f.gotGallery = in
	return &entity.GalleryItem{ID: id}, f.err
}
func (f *fakeContent) DeleteGalleryItem(ctx context.Context, id string) error { return f.err }

func (f *fakeContent) ListReports(ctx context.Context) ([]entity.Report, error) { return nil, f.err }
func (f *fakeContent) CreateReport(ctx context.Context, in application.ReportInput, file *application.Upload) (*entity.Report, error) {
	f.gotReport = in
	if err := f.take(file); err != nil {
		return nil, err
	}
	return &entity.Report{ID: "r1", Title: in.Title, ReportType: in.ReportType}, f.err
}
func (f *fakeContent) UpdateReport(ctx context.Context, id string, in application.ReportInput, file *application.Upload) (*entity.Report, error) {
	f.gotReport = in
	if file != nil {
		if err := f.take(file); err != nil {
			return nil, err
		}
	}
	return &entity.Report{ID: id}, f.err
}
func (f *fakeContent) DeleteReport(ctx context.Context, id string) error { return f.err }

func fmtInvalid(msg string) error {
	return fmt.Errorf("%w: %s", application.ErrInvalidInput, msg)
}
