package supplier

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/shared"
)

// MaxPhoneDigits is the length of an Iraqi mobile number (07XXXXXXXXX)
const MaxPhoneDigits = 11

// Common errors
var (
	ErrNameRequired           = errors.New("supplier name is required")
	ErrPhoneRequired          = errors.New("supplier phone is required")
	ErrAddressRequired        = errors.New("supplier address is required")
	ErrNegativeOpeningBalance = errors.New("opening balance cannot be negative")
)

// Supplier is a vendor that purchase lists and direct payments are recorded against
type Supplier struct {
	ID                     string           `json:"id" bson:"id"`
	Name                   string           `json:"name" bson:"name"`
	Phone                  string           `json:"phone" bson:"phone"`
	Address                string           `json:"address" bson:"address"`
	OpeningBalance         decimal.Decimal  `json:"openingBalance" bson:"openingBalance"`
	OpeningBalanceCurrency currency.Code    `json:"openingBalanceCurrency" bson:"openingBalanceCurrency"`
	Payments               []shared.Payment `json:"payments" bson:"payments"`
}

// Params holds the user input for a new supplier
type Params struct {
	Name                   string
	Phone                  string
	Address                string
	OpeningBalance         decimal.Decimal
	OpeningBalanceCurrency currency.Code
}

// New validates params and builds a supplier with no payments
func New(id string, p Params) (*Supplier, error) {
	name := strings.TrimSpace(p.Name)
	phone := NormalizePhone(p.Phone)
	address := strings.TrimSpace(p.Address)

	if name == "" {
		return nil, shared.Invalid("name", ErrNameRequired)
	}
	if phone == "" {
		return nil, shared.Invalid("phone", ErrPhoneRequired)
	}
	if address == "" {
		return nil, shared.Invalid("address", ErrAddressRequired)
	}
	if p.OpeningBalance.IsNegative() {
		return nil, shared.Invalid("openingBalance", ErrNegativeOpeningBalance)
	}

	code := currency.Normalize(p.OpeningBalanceCurrency)
	if !currency.IsSupported(code) {
		return nil, shared.Invalid("openingBalanceCurrency", shared.ErrUnsupportedCurrency)
	}

	return &Supplier{
		ID:                     id,
		Name:                   name,
		Phone:                  phone,
		Address:                address,
		OpeningBalance:         p.OpeningBalance,
		OpeningBalanceCurrency: code,
		Payments:               []shared.Payment{},
	}, nil
}

// NormalizePhone keeps digits only and truncates to MaxPhoneDigits
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() >= MaxPhoneDigits {
			break
		}
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RecordPayment appends a direct payment. Only supported currencies are accepted for new payments.
func (s *Supplier) RecordPayment(id string, amount decimal.Decimal, code currency.Code, at time.Time) (shared.Payment, error) {
	if !amount.IsPositive() {
		return shared.Payment{}, shared.Invalid("amount", shared.ErrAmountNotPositive)
	}
	code = currency.Normalize(code)
	if !currency.IsSupported(code) {
		return shared.Payment{}, shared.Invalid("currency", shared.ErrUnsupportedCurrency)
	}

	payment := shared.Payment{ID: id, Amount: amount, Currency: code, Date: at}
	s.Payments = append(s.Payments, payment)
	return payment, nil
}

// Normalize fills in defaults for records loaded from older data
func (s *Supplier) Normalize() {
	s.OpeningBalanceCurrency = currency.Normalize(s.OpeningBalanceCurrency)
	if s.Payments == nil {
		s.Payments = []shared.Payment{}
	}
	for i := range s.Payments {
		s.Payments[i].Currency = currency.Normalize(s.Payments[i].Currency)
	}
}

// Clone returns a deep copy
func (s Supplier) Clone() Supplier {
	s.Payments = shared.ClonePayments(s.Payments)
	return s
}

// Matches reports whether the normalized query hits name, phone or address
func (s Supplier) Matches(query string) bool {
	return shared.ContainsAny(query, s.Name, s.Phone, s.Address)
}
