package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func affected(n int64) error {
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, content, COALESCE(featured_image_url, ''), published_at, created_at, updated_at`

func scanPosts(rows pgx.Rows) ([]entity.BlogPost, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BlogPost, error) {
		var p entity.BlogPost
		err := row.Scan(&p.ID, &p.Title, &p.Content, &p.FeaturedImageURL, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
}

func (r *BlogRepository) List(ctx context.Context) ([]entity.BlogPost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+blogColumns+` FROM blog_posts ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE substring pattern in which
// the user's %, _ and \ match literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

func (r *BlogRepository) Search(ctx context.Context, q string, limit int) ([]entity.BlogPost, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+` FROM blog_posts
		WHERE title ILIKE $1 ESCAPE '\' OR content ILIKE $1 ESCAPE '\'
		ORDER BY published_at DESC
		LIMIT $2
	`, containsPattern(q), limit)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	var p entity.BlogPost
	err := r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.FeaturedImageURL, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *BlogRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (title, content, featured_image_url, published_at)
		VALUES ($1, $2, NULLIF($3, ''), COALESCE($4, now()))
		RETURNING id, published_at, created_at, updated_at
	`, p.Title, p.Content, p.FeaturedImageURL, nullTime(p.PublishedAt)).
		Scan(&p.ID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
}

func (r *BlogRepository) Update(ctx context.Context, p *entity.BlogPost) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE blog_posts
		SET title = $1, content = $2, featured_image_url = NULLIF($3, ''),
		    published_at = COALESCE($4, published_at), updated_at = now()
		WHERE id = $5
		RETURNING published_at, created_at, updated_at
	`, p.Title, p.Content, p.FeaturedImageURL, nullTime(p.PublishedAt), p.ID).
		Scan(&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return notFound(err)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res.RowsAffected())
}

type GalleryRepository struct {
	pool *pgxpool.Pool
}

func NewGalleryRepository(pool *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{pool: pool}
}

const galleryColumns = `id, title, COALESCE(description, ''), media_url, media_type, category, COALESCE(location, ''), created_at`

func scanGalleryRow(row pgx.Row, g *entity.GalleryItem) error {
	return row.Scan(&g.ID, &g.Title, &g.Description, &g.MediaURL, &g.MediaType, &g.Category, &g.Location, &g.CreatedAt)
}

func (r *GalleryRepository) List(ctx context.Context, category string) ([]entity.GalleryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+galleryColumns+` FROM gallery_items
		WHERE $1 = '' OR category = $1
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.GalleryItem, error) {
		var g entity.GalleryItem
		err := scanGalleryRow(row, &g)
		return g, err
	})
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*entity.GalleryItem, error) {
	var g entity.GalleryItem
	if err := scanGalleryRow(r.pool.QueryRow(ctx, `SELECT `+galleryColumns+` FROM gallery_items WHERE id = $1`, id), &g); err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GalleryRepository) Create(ctx context.Context, g *entity.GalleryItem) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO gallery_items (title, description, media_url, media_type, category, location)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at
	`, g.Title, g.Description, g.MediaURL, g.MediaType, g.Category, g.Location).Scan(&g.ID, &g.CreatedAt)
}

func (r *GalleryRepository) Update(ctx context.Context, g *entity.GalleryItem) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE gallery_items
		SET title = $1, description = NULLIF($2, ''), media_url = $3, media_type = $4,
		    category = $5, location = NULLIF($6, '')
		WHERE id = $7
		RETURNING created_at
	`, g.Title, g.Description, g.MediaURL, g.MediaType, g.Category, g.Location, g.ID).Scan(&g.CreatedAt)
	return notFound(err)
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res.RowsAffected())
}

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, title, report_type, file_url, publish_date, created_at`

func scanReportRow(row pgx.Row, rp *entity.Report) error {
	return row.Scan(&rp.ID, &rp.Title, &rp.ReportType, &rp.FileURL, &rp.PublishDate, &rp.CreatedAt)
}

func (r *ReportRepository) List(ctx context.Context) ([]entity.Report, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY publish_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Report, error) {
		var rp entity.Report
		err := scanReportRow(row, &rp)
		return rp, err
	})
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	var rp entity.Report
	if err := scanReportRow(r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id), &rp); err != nil {
		return nil, notFound(err)
	}
	return &rp, nil
}

func (r *ReportRepository) Create(ctx context.Context, rp *entity.Report) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO reports (title, report_type, file_url, publish_date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id, created_at
	`, rp.Title, rp.ReportType, rp.FileURL, rp.PublishDate).Scan(&rp.ID, &rp.CreatedAt)
}

func (r *ReportRepository) Update(ctx context.Context, rp *entity.Report) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE reports
		SET title = $1, report_type = $2, file_url = $3, publish_date = $4::date
		WHERE id = $5
		RETURNING created_at
	`, rp.Title, rp.ReportType, rp.FileURL, rp.PublishDate, rp.ID).Scan(&rp.CreatedAt)
	return notFound(err)
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res.RowsAffected())
}

var (
	_ repository.BlogRepository    = (*BlogRepository)(nil)
	_ repository.GalleryRepository = (*GalleryRepository)(nil)
	_ repository.ReportRepository  = (*ReportRepository)(nil)
)
