package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditProductCreated   = "PRODUCT_CREATED"
	AuditStockReceiving   = "STOCK_RECEIVING"
	AuditStockTransfer    = "STOCK_TRANSFER"
	AuditStockAdjustment  = "STOCK_ADJUSTMENT"
	AuditEntityProduct    = "PRODUCT"
	AuditEntityMovement   = "STOCK_MOVEMENT"
	auditStockActionPrefix = "STOCK_"
)

// AuditActionForMovement devuelve la acción de bitácora correspondiente a un tipo de movimiento.
func AuditActionForMovement(movementType string) string {
	return auditStockActionPrefix + movementType
}

// AuditLogEntry entrada de la bitácora. Es append-only: nunca se edita ni se borra.
type AuditLogEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	UserEmail       string    `json:"userEmail"`
	UserDisplayName *string   `json:"userDisplayName"`
	ActionType      string    `json:"actionType"`
	EntityType      string    `json:"entityType"`
	EntityID        *string   `json:"entityId"`
	Description     string    `json:"description"`
	Details         *string   `json:"details"`
	CreatedAt       time.Time `json:"createdAt"`
}
