package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// LedgerMismatch posición donde el stock resultante registrado no coincide con la reproducción.
type LedgerMismatch struct {
	Index      int
	MovementID string
	Expected   int
	Recorded   int
}

func (m LedgerMismatch) String() string {
	return fmt.Sprintf("movimiento %s (#%d): esperado %d, registrado %d", m.MovementID, m.Index, m.Expected, m.Recorded)
}

// SortChronological ordena una copia de los movimientos por CreatedAt ascendente y, con CreatedAt
// igual, por ID ascendente (los IDs del servidor son UUIDv7, crecientes en orden de aplicación).
// Aplicarla sobre una lista ya ordenada no la cambia.
func SortChronological(movements []entity.StockMovement) []entity.StockMovement {
	out := make([]entity.StockMovement, len(movements))
	copy(out, movements)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GroupByProduct agrupa movimientos por producto, cada grupo en orden cronológico.
func GroupByProduct(movements []entity.StockMovement) map[string][]entity.StockMovement {
	groups := make(map[string][]entity.StockMovement)
	for _, m := range SortChronological(movements) {
		groups[m.ProductID] = append(groups[m.ProductID], m)
	}
	return groups
}

// OpeningBalance stock del producto antes del primer movimiento (cronológico) de la lista.
// La creación del producto no genera movimiento, así que el saldo inicial se deduce del primero.
func OpeningBalance(chronological []entity.StockMovement) int {
	if len(chronological) == 0 {
		return 0
	}
	first := chronological[0]
	return first.ResultingStock - first.Adjustment
}

// Replay aplica los ajustes desde opening y devuelve el stock esperado tras cada movimiento.
func Replay(opening int, chronological []entity.StockMovement) []int {
	out := make([]int, len(chronological))
	stock := opening
	for i, m := range chronological {
		stock += m.Adjustment
		out[i] = stock
	}
	return out
}

// VerifyLedger compara la reproducción con los ResultingStock registrados.
// Devuelve nil si la cadena es consistente.
func VerifyLedger(opening int, chronological []entity.StockMovement) []LedgerMismatch {
	var mismatches []LedgerMismatch
	for i, expected := range Replay(opening, chronological) {
		if chronological[i].ResultingStock != expected {
			mismatches = append(mismatches, LedgerMismatch{
				Index:      i,
				MovementID: chronological[i].ID,
				Expected:   expected,
				Recorded:   chronological[i].ResultingStock,
			})
		}
	}
	return mismatches
}

// CurrentStockMatches indica si el último movimiento deja el stock actual del producto.
// Solo es concluyente si la lista contiene todos los movimientos posteriores al último observado.
func CurrentStockMatches(p entity.Product, chronological []entity.StockMovement) bool {
	if len(chronological) == 0 {
		return true
	}
	return chronological[len(chronological)-1].ResultingStock == p.StockQuantity
}
