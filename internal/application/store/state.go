package store

import "time"

// State estado del store.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateErrored State = "errored"
)

// Snapshot vista inmutable del store en un instante. Data es de solo lectura para el consumidor.
type Snapshot[T any] struct {
	Name      string
	Data      T
	State     State
	Loading   bool   // hay al menos un refresh en vuelo
	Error     string // mensaje legible del último fallo aplicado; vacío si el último aplicado fue exitoso
	Version   uint64 // secuencia del último resultado aplicado (0 = ninguno)
	UpdatedAt time.Time
}

// HasData indica si alguna vez se aplicó un resultado exitoso.
func (s Snapshot[T]) HasData() bool {
	return !s.UpdatedAt.IsZero()
}
