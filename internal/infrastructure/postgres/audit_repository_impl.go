package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e repository.AuditEntry) error {
	meta := []byte("{}")
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
		meta = b
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_audit_log (subject_id, email, action, ip, user_agent, metadata)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6)
	`, e.SubjectID, e.Email, e.Action, e.IP, e.UserAgent, meta)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
