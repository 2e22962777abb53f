package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
)

var at = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Suppliers: []supplier.Supplier{{
			ID: "S", Name: "Acme <Co>", Phone: "07701234567", Address: "Basra",
			OpeningBalance: d("1000"), OpeningBalanceCurrency: currency.IQD,
			Payments: []shared.Payment{{ID: "sp", Amount: d("40"), Currency: currency.USD, Date: at}},
		}},
		Lists: []purchase.List{
			{
				ID: "L1", SupplierID: "S", Number: "17", Currency: currency.USD,
				Amount: d("300"), Paid: d("50"), CreatedAt: at, Image: "https://cdn.example/lists/L1.png",
				Products: []purchase.ProductLine{purchase.NewProductLine("cement", d("3"), d("100"))},
				Payments: []shared.Payment{{ID: "lp", Amount: d("50"), Currency: currency.USD, Date: at}},
			},
			{ID: "L2", SupplierID: "gone", Number: "18", Currency: currency.IQD, Amount: d("0"), Paid: d("0"), CreatedAt: at},
		},
	}
}

func render(t *testing.T, page string, data any) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data))
	return buf.String()
}

func TestRenderer_Pages(t *testing.T) {
	snap := snapshot()

	t.Run("Suppliers", func(t *testing.T) {
		out := render(t, PageSuppliers, NewSuppliersPage("", snap.Suppliers, snap))
		assert.Contains(t, out, `dir="rtl"`)
		assert.Contains(t, out, "Acme &lt;Co&gt;")
		assert.Contains(t, out, "1000.00 د.ع")
		assert.Contains(t, out, "90.00 دولار")
		assert.Contains(t, out, "1000.00 د.ع · 210.00 دولار")
	})

	t.Run("SuppliersEmptySearch", func(t *testing.T) {
		out := render(t, PageSuppliers, NewSuppliersPage("zzz", nil, snap))
		assert.Contains(t, out, "لا توجد نتائج للبحث")
	})

	t.Run("Lists", func(t *testing.T) {
		out := render(t, PageLists, NewListsPage("", snap.Lists, snap))
		assert.Contains(t, out, "300.00 دولار")
		assert.Contains(t, out, "مدفوعة جزئياً")
		assert.Contains(t, out, "مدفوعة بالكامل")
		assert.Contains(t, out, "—")
		assert.Contains(t, out, "2024-03-09")
	})

	t.Run("Activity", func(t *testing.T) {
		out := render(t, PageActivity, ActivityPage{Entries: []activity.Entry{
			{ID: "a", Type: activity.TypePayment, Title: "دفع جزئي: 17", Meta: "50.00 دولار", Date: at},
		}})
		assert.Contains(t, out, "💰")
		assert.Contains(t, out, "دفع جزئي: 17")
		assert.Contains(t, out, "14:05")
	})

	t.Run("Dashboard", func(t *testing.T) {
		dash := ledger.ComputeDashboard(snap, ledger.DashboardOptions{})
		out := render(t, PageDashboard, NewDashboardPage(dash, snap))
		assert.Contains(t, out, `<strong id="statSuppliers">1</strong>`)
		assert.Contains(t, out, `<strong id="statTotalAmount">1000.00</strong>`)
		assert.Contains(t, out, `<strong id="statPaidUSD">90.00</strong>`)
		assert.Contains(t, out, "caveat")
	})

	t.Run("SupplierDetail", func(t *testing.T) {
		detail := NewSupplierDetail(snap, snap.Suppliers[0])
		out := render(t, PageSupplier, detail)
		assert.Contains(t, out, "قائمة: 17")
		assert.Contains(t, out, "دفع للمورد")
		assert.Contains(t, out, "250.00 دولار")
		assert.Len(t, detail.ListRows, 1)
		assert.Len(t, detail.Statement, 2)
	})

	t.Run("ListDetail", func(t *testing.T) {
		out := render(t, PageList, NewListDetail(snap, snap.Lists[0]))
		assert.Contains(t, out, "دولار أمريكي")
		assert.Contains(t, out, "250.00 دولار")
		assert.Contains(t, out, "https://cdn.example/lists/L1.png")
		assert.Contains(t, out, "cement")
	})

	t.Run("PrintViews", func(t *testing.T) {
		out := render(t, PagePrintList, NewListDetail(snap, snap.Lists[1]))
		assert.Contains(t, out, "window.print()")
		assert.Contains(t, out, "دينار عراقي")

		out = render(t, PagePrintSupplier, NewSupplierDetail(snap, snap.Suppliers[0]))
		assert.Contains(t, out, "كشف حساب مورد")
		assert.Contains(t, out, "<td>1</td>")
	})
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "nope", nil))
	assert.Zero(t, buf.Len())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "غير مدفوعة", StatusLabel(purchase.StatusUnpaid))
	assert.Equal(t, "other", StatusLabel("other"))
}
