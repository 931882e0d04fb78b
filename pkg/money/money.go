// Package money formatea montos decimales para salidas legibles (CLI y PDF).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format devuelve el monto con símbolo, separador de miles y dos decimales. Ej: "$1,234.50".
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// Units formatea una cantidad entera con separador de miles.
func Units(n int) string {
	return printer.Sprint(number.Decimal(n))
}
