package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/domain/currency"
)

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	state  Bookkeeper
	logger *slog.Logger
}

func NewSupplierHandler(logger *slog.Logger, state Bookkeeper) *SupplierHandler {
	return &SupplierHandler{state: state, logger: logger}
}

// List filters suppliers with ?q= and attaches their remaining balances
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers := h.state.Suppliers(c.Query("q"))
	snap := h.state.Snapshot()

	out := make([]SupplierResponse, 0, len(suppliers))
	for _, sup := range suppliers {
		out = append(out, newSupplierResponse(sup, snap))
	}
	RespondOK(c, out)
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sup, batch, err := h.state.AddSupplier(c.Request.Context(), req.params())
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondWithSync(c, http.StatusCreated, sup, batch)
}

// Get returns the supplier with its balance, lists and payment statement
func (h *SupplierHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sup, err := h.state.Supplier(id)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}

	snap := h.state.Snapshot()
	RespondOK(c, SupplierDetailResponse{
		Supplier:  sup,
		Balance:   h.state.Balance(id),
		Lists:     snap.ListsForSupplier(id),
		Statement: h.state.Statement(id),
	})
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	batch, err := h.state.DeleteSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondWithSync(c, http.StatusOK, gin.H{"id": c.Param("id")}, batch)
}

// Balance answers for unknown ids too, since their orphaned lists still aggregate
func (h *SupplierHandler) Balance(c *gin.Context) {
	RespondOK(c, h.state.Balance(c.Param("id")))
}

func (h *SupplierHandler) Statement(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.state.Supplier(id); err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, h.state.Statement(id))
}

func (h *SupplierHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, batch, err := h.state.RecordSupplierPayment(c.Request.Context(), c.Param("id"), req.Amount, currency.Code(req.Currency))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondWithSync(c, http.StatusCreated, payment, batch)
}
