package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// UncategorizedLabel agrupa los productos sin categoría (nil o en blanco).
const UncategorizedLabel = "Uncategorized"

// HighValueThreshold valoración mínima para el filtro de alto valor.
var HighValueThreshold = decimal.NewFromInt(1000)

// Valuation devuelve precio * cantidad. Un precio inválido vale 0; nunca falla.
func Valuation(p entity.Product) decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Amount.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// IsHighValue indica si la valoración alcanza HighValueThreshold.
func IsHighValue(p entity.Product) bool {
	return Valuation(p).GreaterThanOrEqual(HighValueThreshold)
}

// CategoryRow fila agregada por categoría.
type CategoryRow struct {
	Category string          `json:"category"`
	SKUs     int             `json:"skus"`
	Units    int             `json:"units"`
	Value    decimal.Decimal `json:"value"`
}

// CategoryAggregate agrupa por categoría y ordena por valor descendente.
// Los empates conservan el orden en que se descubrió cada grupo.
func CategoryAggregate(products []entity.Product) []CategoryRow {
	index := make(map[string]int)
	rows := make([]CategoryRow, 0)
	for _, p := range products {
		key := strings.TrimSpace(p.CategoryName())
		if key == "" {
			key = UncategorizedLabel
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, CategoryRow{Category: key, Value: decimal.Zero})
		}
		rows[i].SKUs++
		rows[i].Units += p.StockQuantity
		rows[i].Value = rows[i].Value.Add(Valuation(p))
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Value.GreaterThan(rows[b].Value)
	})
	return rows
}
