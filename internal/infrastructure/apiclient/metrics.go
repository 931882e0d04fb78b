package apiclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contadores e histogramas de los requests salientes.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registra las métricas del cliente en reg. Con reg nil no se registran (métricas solo en memoria).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_client_requests_total",
				Help: "Total de requests al API de inventario por ruta y status",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_client_request_duration_seconds",
				Help:    "Duración de los requests al API de inventario",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

// observe status 0 significa error de red.
func (m *Metrics) observe(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, route, label).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Requests expone el contador (tests y diagnóstico).
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}

// routeOf quita la query y reemplaza los ids de recurso por {id} para acotar la cardinalidad.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	// api / v1 / <recurso> / <id> / ...
	if len(segs) >= 4 && segs[0] == "api" && segs[3] != "me" {
		segs[3] = "{id}"
	}
	return "/" + strings.Join(segs, "/")
}
