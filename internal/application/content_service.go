package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	repo "github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

var (
	ErrFileRequired = errors.New("file is required")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = repo.ErrNotFound
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ObjectStore persists uploaded files and hands back their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type PostIndex interface {
	Index(ctx context.Context, p entity.BlogPost) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.BlogPost, error)
}

type PostCache interface {
	Get(ctx context.Context) ([]entity.BlogPost, bool)
	Set(ctx context.Context, posts []entity.BlogPost)
	Invalidate(ctx context.Context)
}

type PostInput struct {
	Title            string
	Content          string
	FeaturedImageURL string
}

type GalleryInput struct {
	Title       string
	Description string
	MediaType   entity.MediaType
	Category    string
	Location    string
}

type ReportInput struct {
	Title      string
	ReportType string
	// PublishDate is optional on update; zero keeps the stored date.
	PublishDate time.Time
}

type ContentService struct {
	Posts   repo.BlogRepository
	Gallery repo.GalleryRepository
	Reports repo.ReportRepository
	Objects ObjectStore
	Index   PostIndex
	Cache   PostCache
	Logger  *logrus.Logger

	now func() time.Time
}

func NewContentService(posts repo.BlogRepository, gallery repo.GalleryRepository, reports repo.ReportRepository, objects ObjectStore, index PostIndex, cache PostCache, logger *logrus.Logger) *ContentService {
	return &ContentService{
		Posts:   posts,
		Gallery: gallery,
		Reports: reports,
		Objects: objects,
		Index:   index,
		Cache:   cache,
		Logger:  logger,
		now:     time.Now,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *ContentService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}

// ===== Blog =====

func (s *ContentService) ListPosts(ctx context.Context) ([]entity.BlogPost, error) {
	if s.Cache != nil {
		if posts, ok := s.Cache.Get(ctx); ok {
			return posts, nil
		}
	}
	posts, err := s.Posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, posts)
	}
	return posts, nil
}

// SearchPosts queries the search index and falls back to the database when
// the index is missing or failing.
func (s *ContentService) SearchPosts(ctx context.Context, q string, size int) ([]entity.BlogPost, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.BlogPost{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.Index != nil {
		posts, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return posts, nil
		}
		s.warn(err, "post search failed, using database", logrus.Fields{"q": q})
	}
	return s.Posts.Search(ctx, q, size)
}

func validatePost(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return invalid("content is required")
	}
	return nil
}

func (s *ContentService) CreatePost(ctx context.Context, in PostInput) (*entity.BlogPost, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	p := &entity.BlogPost{
		Title:            strings.TrimSpace(in.Title),
		Content:          in.Content,
		FeaturedImageURL: strings.TrimSpace(in.FeaturedImageURL),
		PublishedAt:      s.now().UTC(),
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	s.postChanged(ctx, p)
	return p, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, id string, in PostInput) (*entity.BlogPost, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = strings.TrimSpace(in.Title)
	p.Content = in.Content
	p.FeaturedImageURL = strings.TrimSpace(in.FeaturedImageURL)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	s.postChanged(ctx, p)
	return p, nil
}

func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	if err := s.Posts.Delete(ctx, id); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, "post unindex failed", logrus.Fields{"post_id": id})
		}
	}
	return nil
}

func (s *ContentService) postChanged(ctx context.Context, p *entity.BlogPost) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, *p); err != nil {
			s.warn(err, "post index failed", logrus.Fields{"post_id": p.ID})
		}
	}
}

// ===== Gallery =====

func (s *ContentService) ListGallery(ctx context.Context, category string) ([]entity.GalleryItem, error) {
	category = strings.TrimSpace(category)
	if category != "" && !slices.Contains(entity.GalleryCategories, category) {
		return nil, invalid("unknown category %q", category)
	}
	return s.Gallery.List(ctx, category)
}

func validateGallery(in GalleryInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if in.MediaType != entity.MediaPhoto && in.MediaType != entity.MediaVideo {
		return invalid("media_type must be photo or video")
	}
	if !slices.Contains(entity.GalleryCategories, in.Category) {
		return invalid("unknown category %q", in.Category)
	}
	return nil
}

func galleryObjectPath(category, filename string) string {
	return path.Join("gallery", category, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
}

func (s *ContentService) CreateGalleryItem(ctx context.Context, in GalleryInput, file *Upload) (*entity.GalleryItem, error) {
	if err := validateGallery(in); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileRequired
	}
	url, err := s.Objects.Upload(ctx, galleryObjectPath(in.Category, file.Filename), file.ContentType, file.Body)
	if err != nil {
		return nil, err
	}
	g := &entity.GalleryItem{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		MediaURL:    url,
		MediaType:   in.MediaType,
		Category:    in.Category,
		Location:    strings.TrimSpace(in.Location),
	}
	if err := s.Gallery.Create(ctx, g); err != nil {
		s.discard(ctx, url)
		return nil, err
	}
	return g, nil
}

func (s *ContentService) UpdateGalleryItem(ctx context.Context, id string, in GalleryInput, file *Upload) (*entity.GalleryItem, error) {
	if err := validateGallery(in); err != nil {
		return nil, err
	}
	g, err := s.Gallery.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldURL := g.MediaURL
	if file != nil {
		url, err := s.Objects.Upload(ctx, galleryObjectPath(in.Category, file.Filename), file.ContentType, file.Body)
		if err != nil {
			return nil, err
		}
		g.MediaURL = url
	}
	g.Title = strings.TrimSpace(in.Title)
	g.Description = in.Description
	g.MediaType = in.MediaType
	g.Category = in.Category
	g.Location = strings.TrimSpace(in.Location)
	if err := s.Gallery.Update(ctx, g); err != nil {
		if g.MediaURL != oldURL {
			s.discard(ctx, g.MediaURL)
		}
		return nil, err
	}
	if g.MediaURL != oldURL {
		s.discard(ctx, oldURL)
	}
	return g, nil
}

func (s *ContentService) DeleteGalleryItem(ctx context.Context, id string) error {
	g, err := s.Gallery.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Gallery.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, g.MediaURL)
	return nil
}

// ===== Reports =====

func (s *ContentService) ListReports(ctx context.Context) ([]entity.Report, error) {
	return s.Reports.List(ctx)
}

func validateReport(in ReportInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if !slices.Contains(entity.ReportTypes, in.ReportType) {
		return invalid("unknown report_type %q", in.ReportType)
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (s *ContentService) reportObjectPath(filename string) string {
	name := unsafeName.ReplaceAllString(filepath.Base(filename), "-")
	return fmt.Sprintf("reports/%d-%s", s.now().Unix(), name)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ContentService) CreateReport(ctx context.Context, in ReportInput, file *Upload) (*entity.Report, error) {
	if err := validateReport(in); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileRequired
	}
	url, err := s.Objects.Upload(ctx, s.reportObjectPath(file.Filename), file.ContentType, file.Body)
	if err != nil {
		return nil, err
	}
	r := &entity.Report{
		Title:       strings.TrimSpace(in.Title),
		ReportType:  in.ReportType,
		FileURL:     url,
		PublishDate: dateOnly(s.now()),
	}
	if err := s.Reports.Create(ctx, r); err != nil {
		s.discard(ctx, url)
		return nil, err
	}
	return r, nil
}

func (s *ContentService) UpdateReport(ctx context.Context, id string, in ReportInput, file *Upload) (*entity.Report, error) {
	if err := validateReport(in); err != nil {
		return nil, err
	}
	r, err := s.Reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldURL := r.FileURL
	if file != nil {
		url, err := s.Objects.Upload(ctx, s.reportObjectPath(file.Filename), file.ContentType, file.Body)
		if err != nil {
			return nil, err
		}
		r.FileURL = url
	}
	r.Title = strings.TrimSpace(in.Title)
	r.ReportType = in.ReportType
	if !in.PublishDate.IsZero() {
		r.PublishDate = dateOnly(in.PublishDate)
	}
	if err := s.Reports.Update(ctx, r); err != nil {
		if r.FileURL != oldURL {
			s.discard(ctx, r.FileURL)
		}
		return nil, err
	}
	if r.FileURL != oldURL {
		s.discard(ctx, oldURL)
	}
	return r, nil
}

func (s *ContentService) DeleteReport(ctx context.Context, id string) error {
	r, err := s.Reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Reports.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, r.FileURL)
	return nil
}

// discard removes a stored object whose record is gone or was never written.
func (s *ContentService) discard(ctx context.Context, url string) {
	if url == "" || s.Objects == nil {
		return
	}
	if err := s.Objects.Delete(ctx, url); err != nil {
		s.warn(err, "object delete failed", logrus.Fields{"url": url})
	}
}
