package currency

import (
	"fmt"
	"strings"
)

// Code identifies a supported denomination currency.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	AUD Code = "AUD"
	INR Code = "INR"
)

// Supported lists the denomination currencies in display order.
func Supported() []Code {
	return []Code{USD, EUR, GBP, JPY, AUD, INR}
}

// Parse normalizes a currency string into a Code.
func Parse(s string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range Supported() {
		if code == supported {
			return code, nil
		}
	}
	return "", fmt.Errorf("currency: unsupported code %q", s)
}

// Lower returns the lowercase form used by upstream query parameters
// and cache keys.
func (c Code) Lower() string {
	return strings.ToLower(string(c))
}

// Symbols maps each currency to its display symbol.
var Symbols = map[Code]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
	AUD: "A$",
	INR: "₹",
}

// rates holds static USD exchange rates. Order book prices arrive
// venue-denominated in USD and the venue has no per-currency endpoint,
// so conversion uses these fixed factors rather than a live feed.
var rates = map[Code]float64{
	USD: 1,
	EUR: 0.92,
	GBP: 0.79,
	JPY: 151.5,
	AUD: 1.52,
	INR: 83.5,
}

// ConvertFromUSD converts a USD value into the target currency.
func ConvertFromUSD(valueInUSD float64, target Code) float64 {
	if target == USD {
		return valueInUSD
	}
	rate, ok := rates[target]
	if !ok {
		return valueInUSD
	}
	return valueInUSD * rate
}

// DecimalPlaces returns how many fraction digits to render for a value
// in the given currency: none for JPY, four for sub-unit prices, two
// otherwise.
func DecimalPlaces(c Code, value float64) int {
	if c == JPY {
		return 0
	}
	if value < 1 && value > -1 {
		return 4
	}
	return 2
}

// separators returns the thousand and decimal separators conventional
// for the currency's primary locale.
func separators(c Code) (thousand, decimal string) {
	switch c {
	case EUR:
		return ".", ","
	default:
		return ",", "."
	}
}
