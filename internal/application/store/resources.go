package store

import (
	"context"
	"slices"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// Nombres de los stores.
const (
	NameProducts       = "products"
	NameStockMovements = "stock-movements"
	NameAuditLogs      = "audit-logs"
	NameMeta           = "meta"
)

// Fuentes de lectura que necesita cada store (las implementa apiclient.Client).
type (
	ProductSource interface {
		ListProducts(ctx context.Context) ([]entity.Product, error)
	}
	MovementSource interface {
		ListStockMovements(ctx context.Context, limit int) ([]entity.StockMovement, error)
	}
	AuditSource interface {
		ListAuditLogs(ctx context.Context, limit int) ([]entity.AuditLogEntry, error)
	}
	MetaSource interface {
		Meta(ctx context.Context) (entity.Meta, error)
	}
)

type (
	ProductStore  = Store[[]entity.Product]
	MovementStore = Store[[]entity.StockMovement]
	AuditStore    = Store[[]entity.AuditLogEntry]
	MetaStore     = Store[entity.Meta]
)

func lenOf[E any](xs []E) int { return len(xs) }

// NewProducts store del catálogo completo.
func NewProducts(src ProductSource, opts ...Option) *ProductStore {
	fetch := func(ctx context.Context, _ int) ([]entity.Product, error) {
		return src.ListProducts(ctx)
	}
	return newStore(NameProducts, fetch, 0, lenOf[entity.Product], slices.Clone[[]entity.Product], opts...)
}

// NewStockMovements store de los movimientos recientes (más recientes primero según el servidor).
func NewStockMovements(src MovementSource, limit int, opts ...Option) *MovementStore {
	return newStore(NameStockMovements, src.ListStockMovements, dto.ClampLimit(limit), lenOf[entity.StockMovement],
		slices.Clone[[]entity.StockMovement], opts...)
}

// NewAuditLogs store de la bitácora reciente.
func NewAuditLogs(src AuditSource, limit int, opts ...Option) *AuditStore {
	return newStore(NameAuditLogs, src.ListAuditLogs, dto.ClampLimit(limit), lenOf[entity.AuditLogEntry],
		slices.Clone[[]entity.AuditLogEntry], opts...)
}

// NewMeta store de la metainformación del servidor.
func NewMeta(src MetaSource, opts ...Option) *MetaStore {
	fetch := func(ctx context.Context, _ int) (entity.Meta, error) {
		return src.Meta(ctx)
	}
	return New[entity.Meta](NameMeta, fetch, 0, nil, opts...)
}

// FindProduct busca por id en la instantánea actual.
func FindProduct(s *ProductStore, id string) (entity.Product, bool) {
	for _, p := range s.Data() {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
