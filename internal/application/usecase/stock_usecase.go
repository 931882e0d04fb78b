package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

// StockUseCase aplica cambios de stock. Cada cambio escribe, en la misma transacción,
// el nuevo stock, un movimiento con el stock resultante y una entrada de bitácora.
type StockUseCase struct {
	tx      TxRunner
	movRepo repository.StockMovementRepository
	clock   Clock
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, movRepo repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{tx: tx, movRepo: movRepo, clock: defaultClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockUseCase) WithClock(c Clock) *StockUseCase {
	uc.clock = c
	return uc
}

// movementInput datos comunes a ajuste directo y movimiento explícito.
type movementInput struct {
	productID    string
	movType      string
	adjustment   int
	fromBusiness *string
	toBusiness   *string
	note         *string
}

// Adjust PATCH /products/{id}/stock: se registra como movimiento ADJUSTMENT.
func (uc *StockUseCase) Adjust(ctx context.Context, actor *entity.AppUser, productID string, in dto.StockAdjustmentRequest) (*entity.Product, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, _, err := uc.apply(ctx, actor, movementInput{
		productID:  productID,
		movType:    entity.MovementTypeAdjustment,
		adjustment: in.Adjustment,
	})
	return p, err
}

// CreateMovement POST /stock-movements.
func (uc *StockUseCase) CreateMovement(ctx context.Context, actor *entity.AppUser, in dto.CreateStockMovementRequest) (*entity.StockMovement, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	_, m, err := uc.apply(ctx, actor, movementInput{
		productID:    in.ProductID,
		movType:      in.Type,
		adjustment:   in.Adjustment,
		fromBusiness: in.FromBusiness,
		toBusiness:   in.ToBusiness,
		note:         in.Note,
	})
	return m, err
}

// Recent movimientos más recientes primero; limit se acota a [1, 200].
func (uc *StockUseCase) Recent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	list, err := uc.movRepo.ListRecent(ctx, dto.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("stock: listar movimientos: %w", err)
	}
	return list, nil
}

func (uc *StockUseCase) apply(ctx context.Context, actor *entity.AppUser, in movementInput) (*entity.Product, *entity.StockMovement, error) {
	var product *entity.Product
	var movement *entity.StockMovement

	err := uc.tx.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		p, err := productRepo.GetByIDForUpdate(ctx, in.productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Detail(domain.ErrNotFound, "Product not found with id: %s", in.productID)
		}
		// La hora se toma con la fila bloqueada: el orden de createdAt es el orden de aplicación.
		now := uc.clock()
		if now.Before(p.UpdatedAt) {
			now = p.UpdatedAt
		}
		newStock := p.StockQuantity + in.adjustment
		if newStock < 0 {
			return domain.Detail(domain.ErrInsufficientStock,
				"Insufficient stock. Current: %d, Adjustment: %d", p.StockQuantity, in.adjustment)
		}
		if err := productRepo.UpdateStock(ctx, p.ID, newStock, now); err != nil {
			return err
		}
		p.StockQuantity = newStock
		p.LowStockAlert = newStock <= p.MinStockLevel
		p.UpdatedAt = now

		actorID, actorEmail := actor.ID, actor.Email
		m := &entity.StockMovement{
			ID:                newID(),
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			Type:              in.movType,
			Adjustment:        in.adjustment,
			ResultingStock:    newStock,
			FromBusiness:      in.fromBusiness,
			ToBusiness:        in.toBusiness,
			Note:              in.note,
			PerformedByUserID: &actorID,
			PerformedByEmail:  &actorEmail,
			CreatedAt:         now,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}

		entry := newAuditEntry(actor, entity.AuditActionForMovement(in.movType), entity.AuditEntityMovement,
			m.ID, movementDescription(m), in.note, now)
		if err := auditRepo.Create(ctx, entry); err != nil {
			return err
		}
		product, movement = p, m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// movementDescription "RECEIVING: +10 unidades de SKU-1 – Nombre".
func movementDescription(m *entity.StockMovement) string {
	sign := ""
	if m.Adjustment >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s: %s%d unidades de %s – %s", m.Type, sign, m.Adjustment, m.SKU, m.ProductName)
}
