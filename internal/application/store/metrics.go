package store

import "github.com/prometheus/client_golang/prometheus"

// Resultados de un refresh.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeStale = "stale"
)

// Metrics métricas de los refresh de todos los stores.
type Metrics struct {
	refreshes *prometheus.CounterVec
	items     *prometheus.GaugeVec
}

// NewMetrics crea y registra las métricas. Con reg nil no se registran.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_store_refresh_total",
				Help: "Refresh de stores por resultado (ok, error, stale)",
			},
			[]string{"store", "outcome"},
		),
		items: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "inventory_store_items",
				Help: "Elementos en la colección del store tras el último refresh aplicado",
			},
			[]string{"store"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.refreshes, m.items)
	}
	return m
}

// Refreshes expone el contador (tests).
func (m *Metrics) Refreshes() *prometheus.CounterVec {
	return m.refreshes
}

func (m *Metrics) refresh(store, outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(store, outcome).Inc()
}

func (m *Metrics) setItems(store string, n int) {
	if m == nil || n < 0 {
		return
	}
	m.items.WithLabelValues(store).Set(float64(n))
}
