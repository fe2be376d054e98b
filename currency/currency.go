// Package currency holds the display currencies offered by the dashboards.
//
// Currencies only label amounts. Nothing is converted: a plan entered in INR
// is projected in INR.
package currency

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Default is used when a code is empty or unknown.
const Default = "USD"

// Currency is one selectable display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var catalog = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
}

// Catalog returns every currency in display order.
func Catalog() []Currency {
	return append([]Currency(nil), catalog...)
}

// Lookup finds a currency by code, ignoring case.
func Lookup(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Symbol returns the symbol for code, or "$" when the code is unknown.
func Symbol(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Symbol
	}
	return "$"
}

// Format renders an amount with the currency symbol and thousands separators,
// rounded to whole units: Format(123456.7, "INR") = "₹123,457".
func Format(amount decimal.Decimal, code string) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + Symbol(code) + humanize.BigComma(rounded.BigInt())
}

// FormatCents is Format with two decimals.
func FormatCents(amount decimal.Decimal, code string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, Symbol(code), humanize.BigComma(whole.BigInt()), cents)
}

// Percent renders a percentage with two decimals: "4096.14%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
