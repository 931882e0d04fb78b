package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditColumns = `id, user_id, user_email, user_display_name, action_type, entity_type, entity_id,
	description, details, created_at`

// AuditLogRepo bitácora append-only.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.UserEmail, e.UserDisplayName, e.ActionType, e.EntityType, e.EntityID,
		e.Description, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLogEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+auditColumns+` FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return collect(rows, func(row pgx.Row) (*entity.AuditLogEntry, error) {
		var e entity.AuditLogEntry
		if err := row.Scan(
			&e.ID, &e.UserID, &e.UserEmail, &e.UserDisplayName, &e.ActionType, &e.EntityType, &e.EntityID,
			&e.Description, &e.Details, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		return &e, nil
	})
}
