package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Producto, movimiento y bitácora se escriben juntos o no se escribe ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// Clock fuente de tiempo (inyectable en tests).
type Clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }

// newID genera un UUIDv7: ordenado por tiempo de creación.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
