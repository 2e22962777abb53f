package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
)

// Statement line sources
const (
	SourceListPrefix     = "قائمة: "
	SourceSupplierDirect = "دفع للمورد"
)

// StatementLine is one payment made to a supplier, either on a list or directly
type StatementLine struct {
	PaymentID string          `json:"paymentId"`
	ListID    string          `json:"listId,omitempty"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  currency.Code   `json:"currency"`
	Date      time.Time       `json:"date"`
}

// SupplierStatement merges list payments and direct payments for supplierID, newest first
func SupplierStatement(snap Snapshot, supplierID string) []StatementLine {
	lines := make([]StatementLine, 0)

	for _, l := range snap.ListsForSupplier(supplierID) {
		for _, p := range l.Payments {
			lines = append(lines, StatementLine{
				PaymentID: p.ID,
				ListID:    l.ID,
				Source:    SourceListPrefix + l.Number,
				Amount:    p.Amount,
				Currency:  currency.Normalize(l.Currency),
				Date:      p.Date,
			})
		}
	}

	if sup, ok := snap.Supplier(supplierID); ok {
		for _, p := range sup.Payments {
			lines = append(lines, StatementLine{
				PaymentID: p.ID,
				Source:    SourceSupplierDirect,
				Amount:    p.Amount,
				Currency:  currency.Normalize(p.Currency),
				Date:      p.Date,
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date.After(lines[j].Date)
	})
	return lines
}
