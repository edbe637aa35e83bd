package currency

import (
	"fmt"

	"github.com/leekchan/accounting"
)

// FormatMoney renders a monetary value with the currency's symbol,
// separators, and decimal-place policy.
func FormatMoney(value float64, c Code) string {
	thousand, decimal := separators(c)
	ac := accounting.Accounting{
		Symbol:    Symbols[c],
		Precision: DecimalPlaces(c, value),
		Thousand:  thousand,
		Decimal:   decimal,
	}
	return ac.FormatMoney(value)
}

// Abbreviate renders a large monetary value in compact form, e.g.
// $1.24T, €56.20B. Values under a thousand fall back to FormatMoney.
func Abbreviate(value float64, c Code) string {
	symbol := Symbols[c]
	switch {
	case value >= 1e12:
		return fmt.Sprintf("%s%.2fT", symbol, value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("%s%.2fB", symbol, value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%s%.2fM", symbol, value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("%s%.2fK", symbol, value/1e3)
	default:
		return FormatMoney(value, c)
	}
}

// FormatPercent renders a signed percentage with two decimals.
func FormatPercent(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}
