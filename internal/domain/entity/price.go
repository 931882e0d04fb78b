package entity

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Price precio decimal no negativo. Valid=false cuando el servidor envió null o un valor no numérico;
// en ese caso la valoración del producto es 0.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// NewPrice construye un precio válido.
func NewPrice(d decimal.Decimal) Price {
	return Price{Amount: d, Valid: true}
}

// MustPrice parsea un literal decimal; pensado para tests y datos semilla.
func MustPrice(s string) Price {
	return NewPrice(decimal.RequireFromString(s))
}

// Decimal devuelve el monto, o cero si el precio no es válido.
func (p Price) Decimal() decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Amount
}

func (p Price) String() string {
	if !p.Valid {
		return ""
	}
	return p.Amount.StringFixed(2)
}

// MarshalJSON escribe el precio como número JSON (sin comillas) o null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.String()), nil
}

// UnmarshalJSON acepta número, string numérico o null. Un valor no parseable deja el precio inválido sin error.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Price{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		*p = Price{}
		return nil
	}
	*p = NewPrice(d)
	return nil
}
