package purchase

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductLine is one itemized row of a list
type ProductLine struct {
	Type      string          `json:"type" bson:"type"`
	Quantity  decimal.Decimal `json:"quantity" bson:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" bson:"unitPrice"`
	Total     decimal.Decimal `json:"total" bson:"total"`
}

// NewProductLine builds a row with its total computed
func NewProductLine(kind string, quantity, unitPrice decimal.Decimal) ProductLine {
	return ProductLine{
		Type:      strings.TrimSpace(kind),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     quantity.Mul(unitPrice),
	}
}

// IsBlank reports a row with no type, quantity or price
func (p ProductLine) IsBlank() bool {
	return strings.TrimSpace(p.Type) == "" && p.Quantity.IsZero() && p.UnitPrice.IsZero()
}

// CleanProducts drops blank rows and recomputes every total
func CleanProducts(lines []ProductLine) []ProductLine {
	out := make([]ProductLine, 0, len(lines))
	for _, line := range lines {
		if line.IsBlank() {
			continue
		}
		out = append(out, NewProductLine(line.Type, line.Quantity, line.UnitPrice))
	}
	return out
}

// SumProducts adds up the row totals
func SumProducts(lines []ProductLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Total)
	}
	return sum
}
