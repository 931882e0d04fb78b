package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// Filter predicado de la vista de inventario.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterInStock    Filter = "in-stock"
	FilterLowStock   Filter = "low-stock"
	FilterOutOfStock Filter = "out-of-stock"
	FilterHighValue  Filter = "high-value"
)

// Filters lista en el orden en que se ofrecen al usuario.
var Filters = []Filter{FilterAll, FilterInStock, FilterLowStock, FilterOutOfStock, FilterHighValue}

// ParseFilter valida un nombre de filtro; vacío equivale a "all".
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("filtro %q: %w", s, domain.ErrInvalidInput)
}

// Match evalúa el predicado sobre un producto.
func (f Filter) Match(p entity.Product) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterInStock:
		return ClassifyStatus(p) == StatusInStock
	case FilterLowStock:
		return ClassifyStatus(p) == StatusLowStock
	case FilterOutOfStock:
		return ClassifyStatus(p) == StatusOutOfStock
	case FilterHighValue:
		return IsHighValue(p)
	}
	return false
}

// MatchesSearch busca q (sin distinguir mayúsculas) en SKU, nombre y categoría.
func MatchesSearch(p entity.Product, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.CategoryName()), q)
}

// Apply devuelve los productos que cumplen el filtro y la búsqueda, en el orden original.
func Apply(products []entity.Product, f Filter, search string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) && MatchesSearch(p, search) {
			out = append(out, p)
		}
	}
	return out
}
