// Package currency is the static registry of the currencies amounts can be denominated in.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Code is an ISO-4217 style currency code
type Code string

const (
	IQD Code = "IQD"
	USD Code = "USD"

	// Default is used wherever a record carries no currency
	Default = IQD
)

// Currency describes how a supported code is displayed
type Currency struct {
	Code  Code   `json:"code"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

var registry = map[Code]Currency{
	IQD: {Code: IQD, Label: "د.ع", Name: "دينار عراقي"},
	USD: {Code: USD, Label: "دولار", Name: "دولار أمريكي"},
}

// Supported returns the supported codes in display order
func Supported() []Code {
	return []Code{IQD, USD}
}

// All returns the registry entries in display order
func All() []Currency {
	out := make([]Currency, 0, len(registry))
	for _, c := range Supported() {
		out = append(out, registry[c])
	}
	return out
}

// IsSupported reports whether code is IQD or USD. Legacy codes such as SAR are not.
func IsSupported(code Code) bool {
	_, ok := registry[code]
	return ok
}

// Normalize upper-cases code and maps a missing code to Default.
// Unsupported codes are kept so aggregation can exclude them.
func Normalize(code Code) Code {
	c := Code(strings.ToUpper(strings.TrimSpace(string(code))))
	if c == "" {
		return Default
	}
	return c
}

// Lookup resolves code, falling back to Default for unknown codes
func Lookup(code Code) Currency {
	if c, ok := registry[Normalize(code)]; ok {
		return c
	}
	return registry[Default]
}

// Label returns the short display label
func Label(code Code) string {
	return Lookup(code).Label
}

// Name returns the long display name
func Name(code Code) string {
	return Lookup(code).Name
}

// Format renders amount with two decimals followed by the currency label
func Format(amount decimal.Decimal, code Code) string {
	return amount.StringFixed(2) + " " + Label(code)
}
