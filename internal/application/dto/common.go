package dto

import "time"

// Límites de los listados recientes (movimientos y bitácora).
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

// ClampLimit aplica el default a valores no positivos y acota a [1, MaxRecentLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// ErrorResponse cuerpo de error HTTP. Message es el texto legible preferido.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
