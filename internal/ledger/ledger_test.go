package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/domain/supplier"
)

var day = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{fmt.Sprintf("want %s, got %s", want, got)}, msgAndArgs...)...)
}

func payment(id, amount string, code currency.Code, at time.Time) shared.Payment {
	return shared.Payment{ID: id, Amount: d(amount), Currency: code, Date: at}
}

func fixture() Snapshot {
	return Snapshot{
		Suppliers: []supplier.Supplier{
			{
				ID:                     "S",
				Name:                   "Acme",
				OpeningBalance:         d("1000"),
				OpeningBalanceCurrency: currency.IQD,
				Payments: []shared.Payment{
					payment("sp1", "100", currency.IQD, day.Add(3*time.Hour)),
					payment("sp2", "40", currency.USD, day.Add(4*time.Hour)),
					payment("sp3", "999", "SAR", day.Add(5*time.Hour)),
				},
			},
			{ID: "T", Name: "Zero Opening", OpeningBalanceCurrency: currency.USD},
		},
		Lists: []purchase.List{
			{ID: "L1", SupplierID: "S", Number: "17", Currency: currency.IQD, Amount: d("500"), Paid: d("200"),
				Payments: []shared.Payment{payment("lp1", "200", currency.IQD, day.Add(time.Hour))}},
			{ID: "L2", SupplierID: "S", Number: "18", Currency: currency.USD, Amount: d("300"), Paid: d("50"),
				Payments: []shared.Payment{payment("lp2", "50", currency.USD, day.Add(2*time.Hour))}},
			{ID: "L3", SupplierID: "T", Number: "1", Currency: currency.USD, Amount: d("70"), Paid: d("0")},
		},
	}
}

func TestComputeBalance(t *testing.T) {
	t.Run("OpeningPlusSingleList", func(t *testing.T) {
		snap := Snapshot{
			Suppliers: []supplier.Supplier{{ID: "S", OpeningBalance: d("1000"), OpeningBalanceCurrency: currency.IQD}},
			Lists:     []purchase.List{{ID: "L1", SupplierID: "S", Currency: currency.IQD, Amount: d("500"), Paid: d("0")}},
		}
		b := ComputeBalance(snap, "S")
		assertAmount(t, "1500", b.RemainingByCurrency[currency.IQD])
		assertAmount(t, "0", b.RemainingByCurrency[currency.USD])
	})

	t.Run("FullBreakdown", func(t *testing.T) {
		b := ComputeBalance(fixture(), "S")

		assert.Len(t, b.OpeningByCurrency, 1)
		assertAmount(t, "1000", b.OpeningByCurrency[currency.IQD])
		assertAmount(t, "500", b.ListsByCurrency[currency.IQD])
		assertAmount(t, "300", b.ListsByCurrency[currency.USD])
		assertAmount(t, "200", b.PaidOnListsByCurrency[currency.IQD])
		assertAmount(t, "50", b.PaidOnListsByCurrency[currency.USD])
		assertAmount(t, "100", b.SupplierPaymentsByCurrency[currency.IQD])
		assertAmount(t, "40", b.SupplierPaymentsByCurrency[currency.USD])

		assertAmount(t, "1500", b.TotalOwedByCurrency[currency.IQD])
		assertAmount(t, "300", b.TotalOwedByCurrency[currency.USD])
		assertAmount(t, "300", b.TotalPaidByCurrency[currency.IQD])
		assertAmount(t, "90", b.TotalPaidByCurrency[currency.USD])
		assertAmount(t, "1200", b.RemainingByCurrency[currency.IQD])
		assertAmount(t, "210", b.RemainingByCurrency[currency.USD])
	})

	t.Run("LegacySARPaymentsNeverCount", func(t *testing.T) {
		b := ComputeBalance(fixture(), "S")
		_, ok := b.SupplierPaymentsByCurrency["SAR"]
		assert.False(t, ok)
		for _, m := range []Amounts{b.TotalPaidByCurrency, b.TotalOwedByCurrency, b.RemainingByCurrency} {
			_, ok := m["SAR"]
			assert.False(t, ok)
		}
	})

	t.Run("ZeroOpeningContributesNothing", func(t *testing.T) {
		b := ComputeBalance(fixture(), "T")
		assert.Empty(t, b.OpeningByCurrency)
		assertAmount(t, "70", b.RemainingByCurrency[currency.USD])
	})

	t.Run("SupportedCurrenciesAlwaysPresent", func(t *testing.T) {
		b := ComputeBalance(Snapshot{}, "nobody")
		for _, c := range currency.Supported() {
			for _, m := range []Amounts{b.TotalOwedByCurrency, b.TotalPaidByCurrency, b.RemainingByCurrency, b.SupplierPaymentsByCurrency} {
				v, ok := m[c]
				require.True(t, ok, "missing %s", c)
				assert.True(t, v.IsZero())
			}
		}
		assert.Empty(t, b.ListsByCurrency)
	})

	t.Run("OverpaymentGoesNegative", func(t *testing.T) {
		snap := Snapshot{
			Suppliers: []supplier.Supplier{{ID: "S", OpeningBalanceCurrency: currency.USD,
				Payments: []shared.Payment{payment("p", "80", currency.USD, day)}}},
			Lists: []purchase.List{{ID: "L", SupplierID: "S", Currency: currency.USD, Amount: d("50"), Paid: d("50")}},
		}
		b := ComputeBalance(snap, "S")
		assertAmount(t, "-80", b.RemainingByCurrency[currency.USD])
	})

	t.Run("OrphanedListsStillAggregate", func(t *testing.T) {
		snap := fixture()
		snap.Suppliers = snap.Suppliers[1:]
		b := ComputeBalance(snap, "S")
		assert.Empty(t, b.OpeningByCurrency)
		assertAmount(t, "300", b.RemainingByCurrency[currency.IQD])
		assertAmount(t, "250", b.RemainingByCurrency[currency.USD])
	})

	t.Run("RemainingIsOwedMinusPaid", func(t *testing.T) {
		snap := fixture()
		for _, sup := range snap.Suppliers {
			b := ComputeBalance(snap, sup.ID)
			for _, c := range currency.Supported() {
				assert.True(t, b.RemainingByCurrency[c].Equal(b.TotalOwedByCurrency[c].Sub(b.TotalPaidByCurrency[c])))
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, ComputeBalance(fixture(), "S"), ComputeBalance(fixture(), "S"))
	})
}

func TestTotalLabel(t *testing.T) {
	assert.Equal(t, "—", TotalLabel(Amounts{}))
	assert.Equal(t, "—", TotalLabel(Amounts{currency.IQD: d("-5")}))
	assert.Equal(t, "1500.00 د.ع · 40.00 دولار", TotalLabel(Amounts{currency.IQD: d("1500"), currency.USD: d("40"), "SAR": d("9")}))
	assert.Equal(t, "40.00 دولار", TotalLabel(Amounts{currency.USD: d("40")}))
}

func TestComputeDashboard(t *testing.T) {
	t.Run("KeepsIQDAsymmetryByDefault", func(t *testing.T) {
		dash := ComputeDashboard(fixture(), DashboardOptions{})

		assert.Equal(t, 2, dash.SupplierCount)
		assert.Equal(t, 3, dash.ListCount)
		assertAmount(t, "1000", dash.OpeningIQD)
		assertAmount(t, "0", dash.OpeningUSD)
		assertAmount(t, "870", dash.TotalListAmount)
		assertAmount(t, "250", dash.TotalPaid)

		// IQD: opening + lists - list payments; the 100 IQD paid directly is ignored
		assertAmount(t, "1300", dash.RemainingIQD)
		assertAmount(t, "200", dash.PaidIQD)
		// USD: direct payments are folded in, SAR is not
		assertAmount(t, "90", dash.PaidUSD)
		assertAmount(t, "280", dash.RemainingUSD)
		assert.True(t, dash.AsymmetricIQD)
	})

	t.Run("FoldOptionMakesIQDSymmetric", func(t *testing.T) {
		dash := ComputeDashboard(fixture(), DashboardOptions{FoldSupplierPaymentsIntoIQD: true})
		assertAmount(t, "300", dash.PaidIQD)
		assertAmount(t, "1200", dash.RemainingIQD)
		assertAmount(t, "280", dash.RemainingUSD)
		assert.False(t, dash.AsymmetricIQD)
	})

	t.Run("RecentListsAreTheFirstFive", func(t *testing.T) {
		snap := Snapshot{}
		for i := 0; i < 7; i++ {
			snap.Lists = append(snap.Lists, purchase.List{ID: fmt.Sprintf("L%d", i), Currency: currency.IQD, Amount: d("1"), Paid: d("0")})
		}
		dash := ComputeDashboard(snap, DashboardOptions{})
		require.Len(t, dash.RecentLists, RecentListsLimit)
		assert.Equal(t, "L0", dash.RecentLists[0].ID)
		assert.Equal(t, "L4", dash.RecentLists[4].ID)
	})

	t.Run("EmptySnapshot", func(t *testing.T) {
		dash := ComputeDashboard(Snapshot{}, DashboardOptions{})
		assert.Zero(t, dash.SupplierCount)
		assert.Empty(t, dash.RecentLists)
		assertAmount(t, "0", dash.RemainingIQD)
		assertAmount(t, "0", dash.RemainingUSD)
	})
}

func TestSupplierStatement(t *testing.T) {
	lines := SupplierStatement(fixture(), "S")
	require.Len(t, lines, 5)

	// newest first: sp3 (SAR, still listed), sp2, sp1, lp2, lp1
	assert.Equal(t, "sp3", lines[0].PaymentID)
	assert.Equal(t, SourceSupplierDirect, lines[0].Source)
	assert.Equal(t, currency.Code("SAR"), lines[0].Currency)

	assert.Equal(t, "lp2", lines[3].PaymentID)
	assert.Equal(t, "قائمة: 18", lines[3].Source)
	assert.Equal(t, "L2", lines[3].ListID)
	assert.Equal(t, currency.USD, lines[3].Currency)

	assert.Equal(t, "lp1", lines[4].PaymentID)
	assert.Empty(t, SupplierStatement(fixture(), "nobody"))
}

func TestSnapshotLookups(t *testing.T) {
	snap := fixture()
	assert.Equal(t, "Acme", snap.SupplierName("S"))
	assert.Equal(t, "", snap.SupplierName("gone"))
	assert.Len(t, snap.ListsForSupplier("S"), 2)

	l, ok := snap.List("L3")
	require.True(t, ok)
	assert.Equal(t, "T", l.SupplierID)
	_, ok = snap.List("nope")
	assert.False(t, ok)
}
