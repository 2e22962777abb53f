// Package purchase models purchase lists and their payment lifecycle.
package purchase

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrSupplierRequired = errors.New("supplier is required")
	ErrNumberRequired   = errors.New("list number is required")
	ErrNegativeAmount   = errors.New("list amount cannot be negative")
	ErrListFullyPaid    = errors.New("list is already fully paid")
)

// Status is the payment state of a list, derived from paid and amount
type Status string

const (
	StatusUnpaid        Status = "unpaid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFullyPaid     Status = "fully_paid"
)

// List is a purchase order / invoice received from a supplier.
// Amount, Paid and every payment are denominated in Currency.
type List struct {
	ID         string           `json:"id" bson:"id"`
	SupplierID string           `json:"supplierId" bson:"supplierId"`
	Number     string           `json:"number" bson:"number"`
	Currency   currency.Code    `json:"currency" bson:"currency"`
	Amount     decimal.Decimal  `json:"amount" bson:"amount"`
	Paid       decimal.Decimal  `json:"paid" bson:"paid"`
	Products   []ProductLine    `json:"products" bson:"products"`
	Payments   []shared.Payment `json:"payments" bson:"payments"`
	Image      string           `json:"image" bson:"image"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
}

// Params holds the user input for a new list
type Params struct {
	SupplierID string
	Number     string
	Currency   currency.Code
	Amount     decimal.Decimal
	Products   []ProductLine
	Image      string
}

// New validates params and builds an unpaid list.
// The amount is the sum of the product lines when they add up to more than zero,
// otherwise the manually entered amount.
func New(id string, p Params, createdAt time.Time) (*List, error) {
	supplierID := strings.TrimSpace(p.SupplierID)
	number := strings.TrimSpace(p.Number)
	if supplierID == "" {
		return nil, shared.Invalid("supplierId", ErrSupplierRequired)
	}
	if number == "" {
		return nil, shared.Invalid("number", ErrNumberRequired)
	}

	code := currency.Normalize(p.Currency)
	if !currency.IsSupported(code) {
		return nil, shared.Invalid("currency", shared.ErrUnsupportedCurrency)
	}

	products := CleanProducts(p.Products)
	amount := p.Amount
	if sum := SumProducts(products); sum.IsPositive() {
		amount = sum
	}
	if amount.IsNegative() {
		return nil, shared.Invalid("amount", ErrNegativeAmount)
	}

	return &List{
		ID:         id,
		SupplierID: supplierID,
		Number:     number,
		Currency:   code,
		Amount:     amount,
		Paid:       decimal.Zero,
		Products:   products,
		Payments:   []shared.Payment{},
		Image:      p.Image,
		CreatedAt:  createdAt,
	}, nil
}

// Status derives the payment state. A list with nothing owed is fully paid.
func (l List) Status() Status {
	switch {
	case l.Paid.GreaterThanOrEqual(l.Amount):
		return StatusFullyPaid
	case l.Paid.IsZero():
		return StatusUnpaid
	default:
		return StatusPartiallyPaid
	}
}

// Remaining is amount minus paid; never negative while paid stays clamped
func (l List) Remaining() decimal.Decimal {
	return l.Amount.Sub(l.Paid)
}

// RecordPayment appends a payment in the list currency and raises paid, clamped to amount.
// The record keeps the requested amount even when it exceeds what was still owed.
func (l *List) RecordPayment(id string, amount decimal.Decimal, at time.Time) (shared.Payment, error) {
	if !amount.IsPositive() {
		return shared.Payment{}, shared.Invalid("amount", shared.ErrAmountNotPositive)
	}
	if l.Status() == StatusFullyPaid {
		return shared.Payment{}, shared.Invalid("amount", ErrListFullyPaid)
	}

	payment := shared.Payment{ID: id, Amount: amount, Currency: l.Currency, Date: at}
	l.Payments = append(l.Payments, payment)
	l.Paid = decimal.Min(l.Amount, l.Paid.Add(amount))
	return payment, nil
}

// Normalize fills in defaults for records loaded from older data
func (l *List) Normalize() {
	l.Currency = currency.Normalize(l.Currency)
	if l.Products == nil {
		l.Products = []ProductLine{}
	}
	if l.Payments == nil {
		l.Payments = []shared.Payment{}
	}
	for i := range l.Payments {
		l.Payments[i].Currency = l.Currency
	}
}

// Clone returns a deep copy
func (l List) Clone() List {
	l.Payments = shared.ClonePayments(l.Payments)
	if l.Products != nil {
		products := make([]ProductLine, len(l.Products))
		copy(products, l.Products)
		l.Products = products
	}
	return l
}

// Matches reports whether the normalized query hits the supplier name, number, amount or paid
func (l List) Matches(query, supplierName string) bool {
	return shared.ContainsAny(query, supplierName, l.Number, l.Amount.StringFixed(2), l.Paid.String())
}
