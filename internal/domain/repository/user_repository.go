package repository

import (
	"context"
	"errors"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for admin account database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ProfileRepository reads the role record held for a subject.
// Profiles are provisioned out of band; the application never writes them.
type ProfileRepository interface {
	GetRole(ctx context.Context, subjectID string) (string, error)
}

// AuditEntry is one row of the admin audit trail.
type AuditEntry struct {
	SubjectID string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
