package dto

import (
	"strings"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// Valores por defecto del servidor cuando el body los omite.
const (
	DefaultStockQuantity = 0
	DefaultMinStockLevel = 5
)

// PriceScale decimales admitidos en el precio (columna NUMERIC(14, 2) en postgres).
const PriceScale = 2

// CreateProductRequest body de POST /api/v1/products.
type CreateProductRequest struct {
	SKU           string       `json:"sku"`
	Name          string       `json:"name"`
	Description   *string      `json:"description,omitempty"`
	Category      *string      `json:"category"`
	Price         entity.Price `json:"price"`
	StockQuantity *int         `json:"stockQuantity"`
	MinStockLevel *int         `json:"minStockLevel"`
}

// Normalize recorta SKU, nombre y categoría; una categoría en blanco pasa a nil.
func (r *CreateProductRequest) Normalize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	r.Category = blankToNil(r.Category)
	r.Description = blankToNil(r.Description)
}

// Validate devuelve el primer campo inválido como *domain.ValidationError.
func (r CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.SKU) == "" {
		return domain.NewValidationError("sku", "SKU is required.")
	}
	if strings.TrimSpace(r.Name) == "" {
		return domain.NewValidationError("name", "Name is required.")
	}
	if !r.Price.Valid {
		return domain.NewValidationError("price", "Price must be a number.")
	}
	if r.Price.Amount.IsNegative() {
		return domain.NewValidationError("price", "Price must be zero or greater.")
	}
	if !r.Price.Amount.Equal(r.Price.Amount.Round(PriceScale)) {
		return domain.NewValidationError("price", "Price must have at most 2 decimal places.")
	}
	if r.StockQuantity != nil && *r.StockQuantity < 0 {
		return domain.NewValidationError("stockQuantity", "Stock quantity cannot be negative.")
	}
	if r.MinStockLevel != nil && *r.MinStockLevel < 0 {
		return domain.NewValidationError("minStockLevel", "Minimum stock level cannot be negative.")
	}
	return nil
}

// StockAdjustmentRequest body de PATCH /api/v1/products/{id}/stock.
type StockAdjustmentRequest struct {
	Adjustment int `json:"adjustment"`
}

// Validate rechaza el ajuste cero: no cambia nada y solo dejaría una entrada inútil en la bitácora.
func (r StockAdjustmentRequest) Validate() error {
	if r.Adjustment == 0 {
		return domain.NewValidationError("adjustment", "Adjustment must be non-zero.")
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
