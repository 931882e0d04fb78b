package inventory

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/store"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

var tracer = otel.Tracer("inventory-coordinator")

// MutationAPI llamadas de escritura al servidor (las implementa apiclient.Client).
type MutationAPI interface {
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error)
	AdjustStock(ctx context.Context, productID string, adjustment int) (entity.Product, error)
	CreateStockMovement(ctx context.Context, in dto.CreateStockMovementRequest) (entity.StockMovement, error)
}

// Stores dependientes que se invalidan tras una mutación. Audit puede ser nil.
type Stores struct {
	Products  store.Refresher
	Movements store.Refresher
	Audit     store.Refresher
}

// Coordinator envía una mutación y luego recarga completos los stores afectados.
// No aplica cambios optimistas, no reintenta y no revierte: la vista nunca va por delante del servidor.
type Coordinator struct {
	api    MutationAPI
	stores Stores
	log    *logger.Logger
}

// NewCoordinator construye el coordinador.
func NewCoordinator(api MutationAPI, stores Stores, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{api: api, stores: stores, log: log.Named("coordinator")}
}

// CreateProduct valida, crea el producto y recarga productos, movimientos y bitácora.
func (c *Coordinator) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error) {
	ctx, span := tracer.Start(ctx, "coordinator.CreateProduct", trace.WithAttributes(
		attribute.String("product.sku", strings.TrimSpace(in.SKU)),
	))
	defer span.End()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return entity.Product{}, fail(span, err)
	}
	p, err := c.api.CreateProduct(ctx, in)
	if err != nil {
		return entity.Product{}, fail(span, err)
	}
	span.SetAttributes(attribute.String("product.id", p.ID))
	c.invalidate(ctx, "create_product", c.stores.Products, c.stores.Movements, c.stores.Audit)
	return p, nil
}

// AdjustStock aplica un ajuste con signo. Un ajuste cero se rechaza sin llamar al servidor.
func (c *Coordinator) AdjustStock(ctx context.Context, productID string, adjustment int) (entity.Product, error) {
	ctx, span := tracer.Start(ctx, "coordinator.AdjustStock", trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("stock.adjustment", adjustment),
	))
	defer span.End()

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return entity.Product{}, fail(span, domain.NewValidationError("productId", "Select a product."))
	}
	if err := (dto.StockAdjustmentRequest{Adjustment: adjustment}).Validate(); err != nil {
		return entity.Product{}, fail(span, err)
	}
	p, err := c.api.AdjustStock(ctx, productID, adjustment)
	if err != nil {
		return entity.Product{}, fail(span, err)
	}
	span.SetAttributes(attribute.Int("stock.resulting", p.StockQuantity))
	c.invalidate(ctx, "adjust_stock", c.stores.Products, c.stores.Movements, c.stores.Audit)
	return p, nil
}

// CreateStockMovement registra un movimiento (recepción, traslado o ajuste) y recarga los stores.
func (c *Coordinator) CreateStockMovement(ctx context.Context, in dto.CreateStockMovementRequest) (entity.StockMovement, error) {
	ctx, span := tracer.Start(ctx, "coordinator.CreateStockMovement", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.String("movement.type", in.Type),
		attribute.Int("stock.adjustment", in.Adjustment),
	))
	defer span.End()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return entity.StockMovement{}, fail(span, err)
	}
	m, err := c.api.CreateStockMovement(ctx, in)
	if err != nil {
		return entity.StockMovement{}, fail(span, err)
	}
	span.SetAttributes(attribute.String("movement.id", m.ID), attribute.Int("stock.resulting", m.ResultingStock))
	c.invalidate(ctx, "create_stock_movement", c.stores.Products, c.stores.Movements, c.stores.Audit)
	return m, nil
}

// invalidate recarga en paralelo los stores y espera a que terminen todos.
// Los fallos de recarga quedan registrados en cada store; la mutación ya fue confirmada.
func (c *Coordinator) invalidate(ctx context.Context, op string, refreshers ...store.Refresher) {
	var wg sync.WaitGroup
	for _, r := range refreshers {
		if r == nil {
			continue
		}
		wg.Add(1)
		go func(r store.Refresher) {
			defer wg.Done()
			if err := r.Refresh(ctx); err != nil {
				c.log.WithContext(ctx).Warn().Err(err).Str("op", op).Str("store", r.Name()).Msg("recarga tras mutación fallida")
			}
		}(r)
	}
	wg.Wait()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, domain.Message(err))
	return err
}
