package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, sku, product_name, movement_type, adjustment, resulting_stock,
	from_business, to_business, note, performed_by_user_id, performed_by_email, created_at`

// StockMovementRepo movimientos de stock (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. No existe Update ni Delete.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.SKU, m.ProductName, m.Type, m.Adjustment, m.ResultingStock,
		m.FromBusiness, m.ToBusiness, m.Note, m.PerformedByUserID, m.PerformedByEmail, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListRecent más recientes primero; el id (UUIDv7) desempata createdAt iguales.
func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collect(rows, scanMovement)
}

// ListByProduct historial completo de un producto en orden cronológico.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by product: %w", err)
	}
	return collect(rows, scanMovement)
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(
		&m.ID, &m.ProductID, &m.SKU, &m.ProductName, &m.Type, &m.Adjustment, &m.ResultingStock,
		&m.FromBusiness, &m.ToBusiness, &m.Note, &m.PerformedByUserID, &m.PerformedByEmail, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
