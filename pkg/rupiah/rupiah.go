// Package rupiah formatea montos y cantidades con las convenciones de es-ID
// (separador de miles "." y decimal ",").
package rupiah

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format devuelve el monto como "Rp 1.250.000" (o "Rp 1.250,50" si tiene decimales).
func Format(amount decimal.Decimal) string {
	return "Rp " + Number(amount)
}

// Number formatea un decimal sin símbolo de moneda.
func Number(amount decimal.Decimal) string {
	p := message.NewPrinter(language.Indonesian)
	if amount.IsInteger() {
		return p.Sprintf("%d", amount.IntPart())
	}
	f, _ := amount.Round(2).Float64()
	return p.Sprintf("%.2f", f)
}

// Int formatea un entero con separador de miles.
func Int(n int) string {
	return message.NewPrinter(language.Indonesian).Sprintf("%d", n)
}
