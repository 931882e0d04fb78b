package dto

import (
	"strings"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// CreateStockMovementRequest body de POST /api/v1/stock-movements.
type CreateStockMovementRequest struct {
	ProductID    string  `json:"productId"`
	Type         string  `json:"type"`
	Adjustment   int     `json:"adjustment"`
	FromBusiness *string `json:"fromBusiness"`
	ToBusiness   *string `json:"toBusiness"`
	Note         *string `json:"note"`
}

// Normalize recorta los textos opcionales; en blanco pasan a nil.
func (r *CreateStockMovementRequest) Normalize() {
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.FromBusiness = blankToNil(r.FromBusiness)
	r.ToBusiness = blankToNil(r.ToBusiness)
	r.Note = blankToNil(r.Note)
}

// Validate exige producto, tipo conocido y ajuste distinto de cero; una recepción debe ser positiva.
func (r CreateStockMovementRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return domain.NewValidationError("productId", "Select a product.")
	}
	if !entity.ValidMovementType(r.Type) {
		return domain.NewValidationError("type", "Unknown movement type.")
	}
	if r.Adjustment == 0 {
		return domain.NewValidationError("adjustment", "Adjustment must be non-zero.")
	}
	if r.Type == entity.MovementTypeReceiving && r.Adjustment < 0 {
		return domain.NewValidationError("adjustment", "Quantity must be a positive number.")
	}
	return nil
}
