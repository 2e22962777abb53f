package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
)

// RecentListsLimit is how many lists the dashboard shows
const RecentListsLimit = 5

// DashboardOptions tunes the blended remaining figures
type DashboardOptions struct {
	// FoldSupplierPaymentsIntoIQD subtracts direct IQD supplier payments from RemainingIQD,
	// matching how USD is computed. Off by default to keep the established figures.
	FoldSupplierPaymentsIntoIQD bool
}

// Dashboard is the cross-supplier summary
type Dashboard struct {
	SupplierCount    int             `json:"supplierCount"`
	ListCount        int             `json:"listCount"`
	OpeningIQD       decimal.Decimal `json:"openingIQD"`
	OpeningUSD       decimal.Decimal `json:"openingUSD"`
	ListsByCurrency  Amounts         `json:"listsByCurrency"`
	PaidByCurrency   Amounts         `json:"paidByCurrency"`
	SupplierPayments Amounts         `json:"supplierPaymentsByCurrency"`
	// TotalListAmount and TotalPaid add every list regardless of currency
	TotalListAmount decimal.Decimal `json:"totalListAmount"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	PaidIQD         decimal.Decimal `json:"paidIQD"`
	PaidUSD         decimal.Decimal `json:"paidUSD"`
	RemainingIQD    decimal.Decimal `json:"remainingIQD"`
	RemainingUSD    decimal.Decimal `json:"remainingUSD"`
	// AsymmetricIQD is true when RemainingIQD leaves direct supplier payments out
	AsymmetricIQD bool            `json:"asymmetricIQD"`
	RecentLists   []purchase.List `json:"recentLists"`
}

// ComputeDashboard aggregates every supplier and list in the snapshot
func ComputeDashboard(snap Snapshot, opts DashboardOptions) Dashboard {
	dash := Dashboard{
		SupplierCount:    len(snap.Suppliers),
		ListCount:        len(snap.Lists),
		ListsByCurrency:  supportedZeros(),
		PaidByCurrency:   supportedZeros(),
		SupplierPayments: supportedZeros(),
		TotalListAmount:  decimal.Zero,
		TotalPaid:        decimal.Zero,
		AsymmetricIQD:    !opts.FoldSupplierPaymentsIntoIQD,
	}

	opening := supportedZeros()
	for _, sup := range snap.Suppliers {
		code := currency.Normalize(sup.OpeningBalanceCurrency)
		if currency.IsSupported(code) {
			opening.add(code, sup.OpeningBalance)
		}
		for _, p := range sup.Payments {
			if pc := currency.Normalize(p.Currency); currency.IsSupported(pc) {
				dash.SupplierPayments.add(pc, p.Amount)
			}
		}
	}
	dash.OpeningIQD = opening.Get(currency.IQD)
	dash.OpeningUSD = opening.Get(currency.USD)

	for _, l := range snap.Lists {
		code := currency.Normalize(l.Currency)
		dash.TotalListAmount = dash.TotalListAmount.Add(l.Amount)
		dash.TotalPaid = dash.TotalPaid.Add(l.Paid)
		if currency.IsSupported(code) {
			dash.ListsByCurrency.add(code, l.Amount)
			dash.PaidByCurrency.add(code, l.Paid)
		}
	}

	dash.PaidIQD = dash.PaidByCurrency.Get(currency.IQD)
	if opts.FoldSupplierPaymentsIntoIQD {
		dash.PaidIQD = dash.PaidIQD.Add(dash.SupplierPayments.Get(currency.IQD))
	}
	dash.PaidUSD = dash.PaidByCurrency.Get(currency.USD).Add(dash.SupplierPayments.Get(currency.USD))

	dash.RemainingIQD = dash.OpeningIQD.Add(dash.ListsByCurrency.Get(currency.IQD)).Sub(dash.PaidIQD)
	dash.RemainingUSD = dash.OpeningUSD.Add(dash.ListsByCurrency.Get(currency.USD)).Sub(dash.PaidUSD)

	n := min(RecentListsLimit, len(snap.Lists))
	dash.RecentLists = make([]purchase.List, n)
	copy(dash.RecentLists, snap.Lists[:n])

	return dash
}
