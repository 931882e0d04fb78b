package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// Summary indicadores del tablero de inventario.
type Summary struct {
	TotalItems      int             `json:"totalItems"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
}

// Summarize calcula los indicadores a partir de una instantánea de productos.
func Summarize(products []entity.Product) Summary {
	s := Summary{TotalItems: len(products), TotalValue: decimal.Zero}
	for _, p := range products {
		s.TotalValue = s.TotalValue.Add(Valuation(p))
		switch ClassifyStatus(p) {
		case StatusLowStock:
			s.LowStockCount++
		case StatusOutOfStock:
			s.OutOfStockCount++
		}
	}
	return s
}

// NeedsAttention productos con stock bajo o agotados, en el orden original.
func NeedsAttention(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if ClassifyStatus(p) != StatusInStock {
			out = append(out, p)
		}
	}
	return out
}
