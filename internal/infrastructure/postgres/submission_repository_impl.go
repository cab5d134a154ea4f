package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

// nullTime maps the zero time to SQL NULL so column defaults apply.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// limitArg maps limit <= 0 to NULL, which Postgres reads as LIMIT ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (sender_name, sender_email, sender_phone, subject, inquiry_type, organization, message)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id, is_read, created_at
	`, m.SenderName, m.SenderEmail, m.SenderPhone, m.Subject, m.InquiryType, m.Organization, m.Message).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
}

func (r *ContactRepository) List(ctx context.Context, limit int) ([]entity.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_name, sender_email, COALESCE(sender_phone, ''), COALESCE(subject, ''),
		       COALESCE(inquiry_type, ''), COALESCE(organization, ''), message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`, limitArg(limit))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ContactMessage, error) {
		var m entity.ContactMessage
		err := row.Scan(&m.ID, &m.SenderName, &m.SenderEmail, &m.SenderPhone, &m.Subject,
			&m.InquiryType, &m.Organization, &m.Message, &m.IsRead, &m.CreatedAt)
		return m, err
	})
}

func (r *ContactRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res.RowsAffected())
}

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

func (r *VolunteerRepository) Create(ctx context.Context, v *entity.VolunteerApplication) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO volunteer_applications (full_name, email, phone, skills, availability, why_interested, cv_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id, created_at
	`, v.FullName, v.Email, v.Phone, v.Skills, v.Availability, v.WhyInterested, v.CVURL).
		Scan(&v.ID, &v.CreatedAt)
}

func (r *VolunteerRepository) List(ctx context.Context, limit int) ([]entity.VolunteerApplication, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, email, COALESCE(phone, ''), COALESCE(skills, ''), COALESCE(availability, ''),
		       COALESCE(why_interested, ''), COALESCE(cv_url, ''), created_at
		FROM volunteer_applications
		ORDER BY created_at DESC
		LIMIT $1
	`, limitArg(limit))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.VolunteerApplication, error) {
		var v entity.VolunteerApplication
		err := row.Scan(&v.ID, &v.FullName, &v.Email, &v.Phone, &v.Skills, &v.Availability,
			&v.WhyInterested, &v.CVURL, &v.CreatedAt)
		return v, err
	})
}

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) Counts(ctx context.Context) (entity.DashboardStats, error) {
	var s entity.DashboardStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM volunteer_applications),
			(SELECT count(*) FROM reports),
			(SELECT count(*) FROM contact_messages),
			(SELECT count(*) FROM gallery_items),
			(SELECT count(*) FROM blog_posts)
	`).Scan(&s.Volunteers, &s.Reports, &s.ContactMessages, &s.GalleryItems, &s.BlogPosts)
	return s, err
}

var (
	_ repository.ContactRepository   = (*ContactRepository)(nil)
	_ repository.VolunteerRepository = (*VolunteerRepository)(nil)
	_ repository.StatsRepository     = (*StatsRepository)(nil)
)
