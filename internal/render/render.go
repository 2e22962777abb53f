// Package render turns ledger data into right-to-left Arabic HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/ledger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageDashboard     = "dashboard"
	PageSuppliers     = "suppliers"
	PageLists         = "lists"
	PageActivity      = "activity"
	PageSupplier      = "supplier"
	PageList          = "list"
	PagePrintSupplier = "print_supplier"
	PagePrintList     = "print_list"
)

var pageLayouts = map[string]string{
	PageDashboard:     "layout",
	PageSuppliers:     "layout",
	PageLists:         "layout",
	PageActivity:      "layout",
	PageSupplier:      "layout",
	PageList:          "layout",
	PagePrintSupplier: "print_layout",
	PagePrintList:     "print_layout",
}

// Status labels
var statusLabels = map[purchase.Status]string{
	purchase.StatusUnpaid:        "غير مدفوعة",
	purchase.StatusPartiallyPaid: "مدفوعة جزئياً",
	purchase.StatusFullyPaid:     "مدفوعة بالكامل",
}

// Funcs are the helpers available inside every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":         money,
		"currencyName":  func(code currency.Code) string { return currency.Name(code) },
		"currencyLabel": func(code currency.Code) string { return currency.Label(code) },
		"date":          formatDate,
		"time":          formatTime,
		"statusLabel":   StatusLabel,
		"activityIcon":  func(t activity.Type) string { return t.Icon() },
		"totalLabel":    ledger.TotalLabel,
		"inc":           func(i int) int { return i + 1 },
	}
}

func money(amount decimal.Decimal, code currency.Code) string {
	return currency.Format(amount, code)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format("2006-01-02")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("15:04")
}

// StatusLabel is the Arabic label for a list status
func StatusLabel(s purchase.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageLayouts))}
	for page, layout := range pageLayouts {
		tmpl, err := template.New(page).Funcs(Funcs()).ParseFS(templateFS,
			"templates/"+layout+".html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into w. Output is buffered so a failed render writes nothing.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, pageLayouts[page], data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
