package shared

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
)

// Payment is a single append-only payment, either against a list or directly to a supplier
type Payment struct {
	ID       string          `json:"id" bson:"id"`
	Amount   decimal.Decimal `json:"amount" bson:"amount"`
	Currency currency.Code   `json:"currency" bson:"currency"`
	Date     time.Time       `json:"date" bson:"date"`
}

// ClonePayments copies a payment history
func ClonePayments(payments []Payment) []Payment {
	if payments == nil {
		return nil
	}
	out := make([]Payment, len(payments))
	copy(out, payments)
	return out
}

// SumPayments adds up the amounts of payments
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
