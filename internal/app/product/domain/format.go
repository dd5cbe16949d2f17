package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is an ISO 4217 code the storefront displays prices in.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyRON Currency = "RON"
)

var roPrinter = message.NewPrinter(language.Romanian)

// FormatPrice renders m the way the Romanian storefront shows prices:
// two decimals, comma separator, currency symbol after a space
// ("12,50 €", "1.234,00 RON"). Unknown currencies fall back to EUR.
func FormatPrice(m *Money, currency Currency) string {
	if m == nil {
		return "N/A"
	}
	symbol := "€"
	if currency == CurrencyRON {
		symbol = "RON"
	}
	return roPrinter.Sprintf("%.2f", m.Float64()) + " " + symbol
}
