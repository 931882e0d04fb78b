package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	db := NewDB()
	tx := NewTxRunner(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Run(ctx, func(pr repository.ProductRepository, mr repository.StockMovementRepository, ar repository.AuditLogRepository) error {
		require.NoError(t, pr.Create(ctx, &entity.Product{ID: "p1", SKU: "A"}))
		require.NoError(t, mr.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := db.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
	moves, _ := db.Movements().ListRecent(ctx, 10)
	assert.Empty(t, moves)
}

func TestTxRunner_CommitPublicaCambios(t *testing.T) {
	db := NewDB()
	tx := NewTxRunner(db)
	ctx := context.Background()

	err := tx.Run(ctx, func(pr repository.ProductRepository, _ repository.StockMovementRepository, ar repository.AuditLogRepository) error {
		if err := pr.Create(ctx, &entity.Product{ID: "p1", SKU: "A", MinStockLevel: 5}); err != nil {
			return err
		}
		return pr.UpdateStock(ctx, "p1", 9, time.Now())
	})
	require.NoError(t, err)

	p, err := db.Products().GetBySKU(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 9, p.StockQuantity)
	assert.False(t, p.LowStockAlert)
}

func TestProductRepo_SKUDuplicadoYOrden(t *testing.T) {
	db := NewDB()
	ctx := context.Background()
	repo := db.Products()

	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "1", SKU: "Z", Name: "Zapato"}))
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "2", SKU: "A", Name: "Abrigo"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Product{ID: "3", SKU: "Z"}), domain.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abrigo", list[0].Name)
}

func TestRepos_CopiasIndependientes(t *testing.T) {
	db := NewDB()
	ctx := context.Background()
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "1", SKU: "A", StockQuantity: 3}))

	p, _ := db.Products().GetByID(ctx, "1")
	p.StockQuantity = 99
	again, _ := db.Products().GetByID(ctx, "1")
	assert.Equal(t, 3, again.StockQuantity)
}
