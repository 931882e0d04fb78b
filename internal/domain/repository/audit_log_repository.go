package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// AuditLogRepository define el puerto de persistencia para la bitácora. Sin Update ni Delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListRecent devuelve las entradas más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLogEntry, error)
}
