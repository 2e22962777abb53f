package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/render"
)

// ViewHandler serves the HTML tables, detail pages and print views
type ViewHandler struct {
	state    Bookkeeper
	renderer PageRenderer
	logger   *slog.Logger
}

func NewViewHandler(logger *slog.Logger, state Bookkeeper, renderer PageRenderer) *ViewHandler {
	return &ViewHandler{state: state, renderer: renderer, logger: logger}
}

func (h *ViewHandler) page(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		h.logger.Error("Failed to render page", "page", name, "error", err)
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("render failed"))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *ViewHandler) notFound(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrNotFound{}) {
		c.Data(http.StatusNotFound, "text/plain; charset=utf-8", []byte(err.Error()))
		return
	}
	h.logger.Error("Unexpected error rendering view", "error", err)
	c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
}

func (h *ViewHandler) Dashboard(c *gin.Context) {
	snap := h.state.Snapshot()
	h.page(c, http.StatusOK, render.PageDashboard, render.NewDashboardPage(h.state.Dashboard(), snap))
}

func (h *ViewHandler) Suppliers(c *gin.Context) {
	q := c.Query("q")
	h.page(c, http.StatusOK, render.PageSuppliers, render.NewSuppliersPage(q, h.state.Suppliers(q), h.state.Snapshot()))
}

func (h *ViewHandler) Lists(c *gin.Context) {
	q := c.Query("q")
	views := h.state.Lists(q)
	lists := make([]purchase.List, 0, len(views))
	for _, v := range views {
		lists = append(lists, v.List)
	}
	h.page(c, http.StatusOK, render.PageLists, render.NewListsPage(q, lists, h.state.Snapshot()))
}

func (h *ViewHandler) Activity(c *gin.Context) {
	q := c.Query("q")
	h.page(c, http.StatusOK, render.PageActivity, render.ActivityPage{Query: q, Entries: h.state.Activity(q)})
}

func (h *ViewHandler) Supplier(c *gin.Context) {
	h.supplier(c, render.PageSupplier)
}

func (h *ViewHandler) PrintSupplier(c *gin.Context) {
	h.supplier(c, render.PagePrintSupplier)
}

func (h *ViewHandler) supplier(c *gin.Context, page string) {
	sup, err := h.state.Supplier(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}
	h.page(c, http.StatusOK, page, render.NewSupplierDetail(h.state.Snapshot(), sup))
}

func (h *ViewHandler) List(c *gin.Context) {
	h.list(c, render.PageList)
}

func (h *ViewHandler) PrintList(c *gin.Context) {
	h.list(c, render.PagePrintList)
}

func (h *ViewHandler) list(c *gin.Context, page string) {
	view, err := h.state.List(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}
	h.page(c, http.StatusOK, page, render.NewListDetail(h.state.Snapshot(), view.List))
}
