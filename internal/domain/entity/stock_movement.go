package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeReceiving  = "RECEIVING"  // entrada de mercancía
	MovementTypeTransfer   = "TRANSFER"   // traslado entre negocios
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeReceiving, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable (append-only) de un cambio de stock de un producto.
// ResultingStock es el stock del producto inmediatamente después de aplicar Adjustment.
type StockMovement struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	SKU               string    `json:"sku,omitempty"`
	ProductName       string    `json:"productName,omitempty"`
	Type              string    `json:"type"`
	Adjustment        int       `json:"adjustment"` // distinto de cero, con signo
	ResultingStock    int       `json:"resultingStock"`
	FromBusiness      *string   `json:"fromBusiness"`
	ToBusiness        *string   `json:"toBusiness"`
	Note              *string   `json:"note"`
	PerformedByUserID *string   `json:"performedByUserId"`
	PerformedByEmail  *string   `json:"performedByEmail"`
	CreatedAt         time.Time `json:"createdAt"`
}
