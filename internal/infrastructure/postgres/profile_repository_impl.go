package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetRole(ctx context.Context, subjectID string) (string, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM admin_profiles WHERE id = $1`, subjectID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	return role, err
}

// Upsert is used by the seed command only.
func (r *ProfileRepository) Upsert(ctx context.Context, subjectID, role string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_profiles (id, role)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()
	`, subjectID, role)
	return err
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
