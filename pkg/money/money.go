// Package money formatea importes en reales (BRL) para PDF y exportaciones.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL devuelve el importe con símbolo y separadores de pt-BR, ej. "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return "R$ " + printer.Sprintf("%.2f", f)
}

// FormatNumber devuelve el número con dos decimales y separadores de pt-BR.
func FormatNumber(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
