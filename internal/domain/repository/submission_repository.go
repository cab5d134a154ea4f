package repository

import (
	"context"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
	// List returns messages newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]entity.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
}

type VolunteerRepository interface {
	Create(ctx context.Context, v *entity.VolunteerApplication) error
	// List returns applications newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]entity.VolunteerApplication, error)
}

type StatsRepository interface {
	Counts(ctx context.Context) (entity.DashboardStats, error)
}
