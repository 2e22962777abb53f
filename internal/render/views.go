package render

import (
	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
)

// SupplierRow is one line of the suppliers table
type SupplierRow struct {
	Supplier  supplier.Supplier
	Opening   string
	Lists     string
	Paid      string
	Remaining string
}

type SuppliersPage struct {
	Query string
	Rows  []SupplierRow
}

// ListRow pairs a list with the name of its supplier ("—" when orphaned)
type ListRow struct {
	List         purchase.List
	SupplierName string
}

type ListsPage struct {
	Query string
	Rows  []ListRow
}

type ActivityPage struct {
	Query   string
	Entries []activity.Entry
}

type DashboardPage struct {
	Dashboard ledger.Dashboard
	Recent    []ListRow
}

// SupplierDetail backs the supplier detail and print pages
type SupplierDetail struct {
	Supplier  supplier.Supplier
	Balance   ledger.BalanceBreakdown
	Opening   string
	Lists     string
	Paid      string
	Remaining string
	ListRows  []purchase.List
	Statement []ledger.StatementLine
}

// ListDetail backs the list detail and print pages
type ListDetail struct {
	List         purchase.List
	SupplierName string
}

func supplierName(snap ledger.Snapshot, id string) string {
	if name := snap.SupplierName(id); name != "" {
		return name
	}
	return "—"
}

// NewSuppliersPage computes the balance columns of every supplier
func NewSuppliersPage(query string, suppliers []supplier.Supplier, snap ledger.Snapshot) SuppliersPage {
	rows := make([]SupplierRow, 0, len(suppliers))
	for _, sup := range suppliers {
		b := ledger.ComputeBalance(snap, sup.ID)
		rows = append(rows, SupplierRow{
			Supplier:  sup,
			Opening:   ledger.TotalLabel(b.OpeningByCurrency),
			Lists:     ledger.TotalLabel(b.ListsByCurrency),
			Paid:      ledger.TotalLabel(b.TotalPaidByCurrency),
			Remaining: ledger.TotalLabel(b.RemainingByCurrency),
		})
	}
	return SuppliersPage{Query: query, Rows: rows}
}

func NewListsPage(query string, lists []purchase.List, snap ledger.Snapshot) ListsPage {
	return ListsPage{Query: query, Rows: listRows(lists, snap)}
}

func NewDashboardPage(dash ledger.Dashboard, snap ledger.Snapshot) DashboardPage {
	return DashboardPage{Dashboard: dash, Recent: listRows(dash.RecentLists, snap)}
}

func listRows(lists []purchase.List, snap ledger.Snapshot) []ListRow {
	rows := make([]ListRow, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, ListRow{List: l, SupplierName: supplierName(snap, l.SupplierID)})
	}
	return rows
}

// NewSupplierDetail aggregates everything shown about one supplier
func NewSupplierDetail(snap ledger.Snapshot, sup supplier.Supplier) SupplierDetail {
	b := ledger.ComputeBalance(snap, sup.ID)
	return SupplierDetail{
		Supplier:  sup,
		Balance:   b,
		Opening:   ledger.TotalLabel(b.OpeningByCurrency),
		Lists:     ledger.TotalLabel(b.ListsByCurrency),
		Paid:      ledger.TotalLabel(b.TotalPaidByCurrency),
		Remaining: ledger.TotalLabel(b.RemainingByCurrency),
		ListRows:  snap.ListsForSupplier(sup.ID),
		Statement: ledger.SupplierStatement(snap, sup.ID),
	}
}

func NewListDetail(snap ledger.Snapshot, l purchase.List) ListDetail {
	return ListDetail{List: l, SupplierName: supplierName(snap, l.SupplierID)}
}
