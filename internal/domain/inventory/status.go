package inventory

import "github.com/jhoicas/nexus-inventory/internal/domain/entity"

// Status estado derivado del stock; nunca se persiste.
type Status string

const (
	StatusInStock    Status = "in-stock"
	StatusLowStock   Status = "low-stock"
	StatusOutOfStock Status = "out-of-stock"
)

// ClassifyStatus clasifica el producto según su stock y su mínimo.
// Sin stock gana siempre; igualar el mínimo cuenta como stock bajo.
func ClassifyStatus(p entity.Product) Status {
	switch {
	case p.StockQuantity <= 0:
		return StatusOutOfStock
	case p.StockQuantity <= p.MinStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
