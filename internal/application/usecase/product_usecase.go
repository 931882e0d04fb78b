package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos. El stock solo cambia vía StockUseCase.
type ProductUseCase struct {
	tx    TxRunner
	repo  repository.ProductRepository
	clock Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{tx: tx, repo: repo, clock: defaultClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *ProductUseCase) WithClock(c Clock) *ProductUseCase {
	uc.clock = c
	return uc
}

// Create crea el producto y su entrada PRODUCT_CREATED en una sola transacción.
// El stock inicial no genera movimiento. SKU duplicado -> ErrDuplicate (409).
func (uc *ProductUseCase) Create(ctx context.Context, actor *entity.AppUser, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	stock := dto.DefaultStockQuantity
	if in.StockQuantity != nil {
		stock = *in.StockQuantity
	}
	minLevel := dto.DefaultMinStockLevel
	if in.MinStockLevel != nil {
		minLevel = *in.MinStockLevel
	}
	now := uc.clock()
	product := &entity.Product{
		ID:            newID(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		StockQuantity: stock,
		MinStockLevel: minLevel,
		LowStockAlert: stock <= minLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.tx.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		existing, err := productRepo.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Detail(domain.ErrDuplicate, "Product with SKU %s already exists.", product.SKU)
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		desc := fmt.Sprintf("Producto creado: %s – %s (stock inicial %d)", product.SKU, product.Name, product.StockQuantity)
		return auditRepo.Create(ctx, newAuditEntry(actor, entity.AuditProductCreated, entity.AuditEntityProduct, product.ID, desc, nil, now))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product: obtener: %w", err)
	}
	if p == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Product not found with id: %s", id)
	}
	return p, nil
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("product: listar: %w", err)
	}
	return list, nil
}
