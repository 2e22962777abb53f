package handler

import (
	"github.com/shopspring/decimal"

	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
)

// LoginRequest carries the gate password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// CreateSupplierRequest represents a request to add a supplier
type CreateSupplierRequest struct {
	Name                   string          `json:"name"`
	Phone                  string          `json:"phone"`
	Address                string          `json:"address"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	OpeningBalanceCurrency string          `json:"openingBalanceCurrency"`
}

func (r CreateSupplierRequest) params() supplier.Params {
	return supplier.Params{
		Name:                   r.Name,
		Phone:                  r.Phone,
		Address:                r.Address,
		OpeningBalance:         r.OpeningBalance,
		OpeningBalanceCurrency: currency.Code(r.OpeningBalanceCurrency),
	}
}

// PaymentRequest represents a payment against a supplier or a list.
// Currency is ignored for lists, which are always paid in their own currency.
type PaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ProductRequest is one product row of a new list
type ProductRequest struct {
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateListRequest represents a request to add a list.
// Image is an optional data url (data:image/png;base64,...).
type CreateListRequest struct {
	SupplierID string           `json:"supplierId"`
	Number     string           `json:"number"`
	Currency   string           `json:"currency"`
	Amount     decimal.Decimal  `json:"amount"`
	Products   []ProductRequest `json:"products"`
	Image      string           `json:"image"`
}

func (r CreateListRequest) params() purchase.Params {
	products := make([]purchase.ProductLine, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, purchase.ProductLine{Type: p.Type, Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	return purchase.Params{
		SupplierID: r.SupplierID,
		Number:     r.Number,
		Currency:   currency.Code(r.Currency),
		Amount:     r.Amount,
		Products:   products,
	}
}

// SupplierResponse is a supplier with its remaining balance per currency
type SupplierResponse struct {
	supplier.Supplier
	RemainingByCurrency ledger.Amounts `json:"remainingByCurrency"`
	RemainingLabel      string         `json:"remainingLabel"`
}

func newSupplierResponse(sup supplier.Supplier, snap ledger.Snapshot) SupplierResponse {
	b := ledger.ComputeBalance(snap, sup.ID)
	return SupplierResponse{
		Supplier:            sup,
		RemainingByCurrency: b.RemainingByCurrency,
		RemainingLabel:      ledger.TotalLabel(b.RemainingByCurrency),
	}
}

// ListResponse is a list with its derived payment state
type ListResponse struct {
	purchase.List
	SupplierName string          `json:"supplierName"`
	Status       purchase.Status `json:"status"`
	Remaining    decimal.Decimal `json:"remaining"`
}

func newListResponse(view bookkeeping.ListView) ListResponse {
	return ListResponse{
		List:         view.List,
		SupplierName: view.SupplierName,
		Status:       view.Status(),
		Remaining:    view.Remaining(),
	}
}

// SupplierDetailResponse bundles everything known about one supplier
type SupplierDetailResponse struct {
	Supplier  supplier.Supplier       `json:"supplier"`
	Balance   ledger.BalanceBreakdown `json:"balance"`
	Lists     []purchase.List         `json:"lists"`
	Statement []ledger.StatementLine  `json:"statement"`
}

// SessionResponse is returned by a successful login
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
