// Package currency formats prices the way the storefront displays
// them: Brazilian reais with pt-BR digit grouping.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders an amount as "R$ 1.234,56".
func Format(amount float64) string {
	return printer.Sprintf("R$ %.2f", amount)
}

// Installment is the per-month price of the standard 12x plan.
func Installment(price float64) float64 {
	return price / 12
}

// PixPrice applies the 10% up-front PIX discount.
func PixPrice(price float64) float64 {
	return price * 0.9
}
