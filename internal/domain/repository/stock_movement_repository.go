package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListRecent devuelve los movimientos más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
