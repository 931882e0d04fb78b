package entity

import "time"

// Product representa un producto (SKU) del catálogo con su stock actual.
// StockQuantity solo cambia en el servidor a través de movimientos; Category nil significa sin categoría.
type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"` // único e inmutable tras la creación
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category"`
	Price         Price     `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	MinStockLevel int       `json:"minStockLevel"`
	LowStockAlert bool      `json:"lowStockAlert"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CategoryName devuelve la categoría o "" si es nil.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
