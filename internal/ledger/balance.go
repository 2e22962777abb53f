package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
)

// Amounts maps a currency code to a sum
type Amounts map[currency.Code]decimal.Decimal

// Get returns the sum for code, zero when absent
func (a Amounts) Get(code currency.Code) decimal.Decimal {
	if v, ok := a[code]; ok {
		return v
	}
	return decimal.Zero
}

func (a Amounts) add(code currency.Code, v decimal.Decimal) {
	a[code] = a.Get(code).Add(v)
}

// addNonZero records v only when it contributes something
func (a Amounts) addNonZero(code currency.Code, v decimal.Decimal) {
	if v.IsZero() {
		return
	}
	a.add(code, v)
}

func supportedZeros() Amounts {
	out := make(Amounts, len(currency.Supported()))
	for _, c := range currency.Supported() {
		out[c] = decimal.Zero
	}
	return out
}

// BalanceBreakdown is the per-currency position of one supplier
type BalanceBreakdown struct {
	SupplierID                 string  `json:"supplierId"`
	OpeningByCurrency          Amounts `json:"openingByCurrency"`
	ListsByCurrency            Amounts `json:"listsByCurrency"`
	PaidOnListsByCurrency      Amounts `json:"paidOnListsByCurrency"`
	SupplierPaymentsByCurrency Amounts `json:"supplierPaymentsByCurrency"`
	TotalOwedByCurrency        Amounts `json:"totalOwedByCurrency"`
	TotalPaidByCurrency        Amounts `json:"totalPaidByCurrency"`
	RemainingByCurrency        Amounts `json:"remainingByCurrency"`
}

// ComputeBalance derives the breakdown for supplierID from the snapshot.
// Lists of an unknown (deleted) supplier still count; only the supplier's own fields go missing.
func ComputeBalance(snap Snapshot, supplierID string) BalanceBreakdown {
	b := BalanceBreakdown{
		SupplierID:                 supplierID,
		OpeningByCurrency:          Amounts{},
		ListsByCurrency:            Amounts{},
		PaidOnListsByCurrency:      Amounts{},
		SupplierPaymentsByCurrency: supportedZeros(),
		TotalOwedByCurrency:        Amounts{},
		TotalPaidByCurrency:        Amounts{},
		RemainingByCurrency:        Amounts{},
	}

	sup, found := snap.Supplier(supplierID)
	if found {
		b.OpeningByCurrency.addNonZero(currency.Normalize(sup.OpeningBalanceCurrency), sup.OpeningBalance)

		for _, p := range sup.Payments {
			code := currency.Normalize(p.Currency)
			// legacy codes (SAR) are excluded, not defaulted
			if !currency.IsSupported(code) {
				continue
			}
			b.SupplierPaymentsByCurrency.add(code, p.Amount)
		}
	}

	for _, l := range snap.ListsForSupplier(supplierID) {
		code := currency.Normalize(l.Currency)
		b.ListsByCurrency.addNonZero(code, l.Amount)
		b.PaidOnListsByCurrency.addNonZero(code, l.Paid)
	}

	for _, c := range currency.Supported() {
		owed := b.OpeningByCurrency.Get(c).Add(b.ListsByCurrency.Get(c))
		paid := b.PaidOnListsByCurrency.Get(c).Add(b.SupplierPaymentsByCurrency.Get(c))
		b.TotalOwedByCurrency[c] = owed
		b.TotalPaidByCurrency[c] = paid
		b.RemainingByCurrency[c] = owed.Sub(paid)
	}

	return b
}

// TotalLabel renders the positive supported amounts joined by " · ", or "—" when there are none
func TotalLabel(amounts Amounts) string {
	parts := make([]string, 0, len(currency.Supported()))
	for _, c := range currency.Supported() {
		if v := amounts.Get(c); v.IsPositive() {
			parts = append(parts, currency.Format(v, c))
		}
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " · ")
}
