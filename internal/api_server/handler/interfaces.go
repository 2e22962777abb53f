package handler

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
	"github.com/supplier-ledger/internal/platform/auth"
	"github.com/supplier-ledger/internal/platform/blob"
)

// Bookkeeper is the application state the handlers read and mutate
type Bookkeeper interface {
	AddSupplier(ctx context.Context, params supplier.Params) (supplier.Supplier, *bookkeeping.Batch, error)
	DeleteSupplier(ctx context.Context, id string) (*bookkeeping.Batch, error)
	RecordSupplierPayment(ctx context.Context, id string, amount decimal.Decimal, code currency.Code) (shared.Payment, *bookkeeping.Batch, error)
	AddList(ctx context.Context, params purchase.Params, img *blob.Image) (purchase.List, *bookkeeping.Batch, error)
	DeleteList(ctx context.Context, id string) (*bookkeeping.Batch, error)
	RecordListPayment(ctx context.Context, id string, amount decimal.Decimal) (purchase.List, *bookkeeping.Batch, error)

	Suppliers(query string) []supplier.Supplier
	Supplier(id string) (supplier.Supplier, error)
	Lists(query string) []bookkeeping.ListView
	List(id string) (bookkeeping.ListView, error)
	Activity(query string) []activity.Entry
	Snapshot() ledger.Snapshot
	Balance(supplierID string) ledger.BalanceBreakdown
	Dashboard() ledger.Dashboard
	Statement(supplierID string) []ledger.StatementLine
}

// PageRenderer writes a named HTML page
type PageRenderer interface {
	Render(w io.Writer, page string, data any) error
}

// SessionIssuer exchanges the gate password for a session
type SessionIssuer interface {
	Login(password string) (*auth.Session, error)
}
