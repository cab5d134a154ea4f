package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

// Content is the blog, gallery and report service.
type Content interface {
	ListPosts(ctx context.Context) ([]entity.BlogPost, error)
	SearchPosts(ctx context.Context, q string, size int) ([]entity.BlogPost, error)
	CreatePost(ctx context.Context, in application.PostInput) (*entity.BlogPost, error)
	UpdatePost(ctx context.Context, id string, in application.PostInput) (*entity.BlogPost, error)
	DeletePost(ctx context.Context, id string) error

	ListGallery(ctx context.Context, category string) ([]entity.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, in application.GalleryInput, file *application.Upload) (*entity.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id string, in application.GalleryInput, file *application.Upload) (*entity.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	ListReports(ctx context.Context) ([]entity.Report, error)
	CreateReport(ctx context.Context, in application.ReportInput, file *application.Upload) (*entity.Report, error)
	UpdateReport(ctx context.Context, id string, in application.ReportInput, file *application.Upload) (*entity.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

type ContentHandler struct {
	Svc            Content
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

func NewContentHandler(svc Content, maxUploadBytes int64, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Svc: svc, MaxUploadBytes: maxUploadBytes, Logger: logger}
}

type postRequest struct {
	Title            string `json:"title" binding:"required,max=200"`
	Content          string `json:"content" binding:"required"`
	FeaturedImageURL string `json:"featured_image_url" binding:"omitempty,url"`
}

func (r postRequest) input() application.PostInput {
	return application.PostInput{Title: r.Title, Content: r.Content, FeaturedImageURL: r.FeaturedImageURL}
}

type galleryForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"max=2000"`
	MediaType   string `form:"media_type" binding:"required,media_type"`
	Category    string `form:"category" binding:"required,gallery_category"`
	Location    string `form:"location" binding:"max=200"`
}

func (f galleryForm) input() application.GalleryInput {
	return application.GalleryInput{
		Title:       f.Title,
		Description: f.Description,
		MediaType:   entity.MediaType(f.MediaType),
		Category:    f.Category,
		Location:    f.Location,
	}
}

type reportForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	ReportType  string `form:"report_type" binding:"required,report_type"`
	PublishDate string `form:"publish_date" binding:"omitempty,isodate"`
}

func (f reportForm) input() application.ReportInput {
	in := application.ReportInput{Title: f.Title, ReportType: f.ReportType}
	if d, err := time.Parse(time.DateOnly, f.PublishDate); err == nil {
		in.PublishDate = d
	}
	return in
}

// ===== Blog =====

// ListPosts GET /api/posts
func (h *ContentHandler) ListPosts(c *gin.Context) {
	posts, err := h.Svc.ListPosts(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "list posts")
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}

// SearchPosts GET /api/posts/search?q=&size=
func (h *ContentHandler) SearchPosts(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	posts, err := h.Svc.SearchPosts(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		serviceError(c, h.Logger, err, "search posts")
		return
	}
	response.Success(c, http.StatusOK, posts, "search results", gin.H{"count": len(posts)})
}

func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.CreatePost(c.Request.Context(), req.input())
	if err != nil {
		serviceError(c, h.Logger, err, "create post")
		return
	}
	response.Success(c, http.StatusCreated, p, "post created", nil)
}

func (h *ContentHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.UpdatePost(c.Request.Context(), id, req.input())
	if err != nil {
		serviceError(c, h.Logger, err, "update post")
		return
	}
	response.Success(c, http.StatusOK, p, "post updated", nil)
}

func (h *ContentHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeletePost(c.Request.Context(), id); err != nil {
		serviceError(c, h.Logger, err, "delete post")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}

// ===== Gallery =====

// ListGallery GET /api/gallery?category=
func (h *ContentHandler) ListGallery(c *gin.Context) {
	items, err := h.Svc.ListGallery(c.Request.Context(), c.Query("category"))
	if err != nil {
		serviceError(c, h.Logger, err, "list gallery")
		return
	}
	response.Success(c, http.StatusOK, items, "gallery", gin.H{"count": len(items)})
}

func (h *ContentHandler) CreateGalleryItem(c *gin.Context) {
	limitBody(c, h.MaxUploadBytes)
	var form galleryForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeFile()

	g, err := h.Svc.CreateGalleryItem(c.Request.Context(), form.input(), file)
	if err != nil {
		serviceError(c, h.Logger, err, "create gallery item")
		return
	}
	response.Success(c, http.StatusCreated, g, "gallery item created", nil)
}

func (h *ContentHandler) UpdateGalleryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limitBody(c, h.MaxUploadBytes)
	var form galleryForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeFile()

	g, err := h.Svc.UpdateGalleryItem(c.Request.Context(), id, form.input(), file)
	if err != nil {
		serviceError(c, h.Logger, err, "update gallery item")
		return
	}
	response.Success(c, http.StatusOK, g, "gallery item updated", nil)
}

func (h *ContentHandler) DeleteGalleryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteGalleryItem(c.Request.Context(), id); err != nil {
		serviceError(c, h.Logger, err, "delete gallery item")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "gallery item deleted", nil)
}

// ===== Reports =====

// ListReports GET /api/reports
func (h *ContentHandler) ListReports(c *gin.Context) {
	reports, err := h.Svc.ListReports(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "list reports")
		return
	}
	response.Success(c, http.StatusOK, reports, "reports", gin.H{"count": len(reports)})
}

func (h *ContentHandler) CreateReport(c *gin.Context) {
	limitBody(c, h.MaxUploadBytes)
	var form reportForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeFile()

	r, err := h.Svc.CreateReport(c.Request.Context(), form.input(), file)
	if err != nil {
		serviceError(c, h.Logger, err, "create report")
		return
	}
	response.Success(c, http.StatusCreated, r, "report created", nil)
}

func (h *ContentHandler) UpdateReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limitBody(c, h.MaxUploadBytes)
	var form reportForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeFile()

	r, err := h.Svc.UpdateReport(c.Request.Context(), id, form.input(), file)
	if err != nil {
		serviceError(c, h.Logger, err, "update report")
		return
	}
	response.Success(c, http.StatusOK, r, "report updated", nil)
}

func (h *ContentHandler) DeleteReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteReport(c.Request.Context(), id); err != nil {
		serviceError(c, h.Logger, err, "delete report")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "report deleted", nil)
}
