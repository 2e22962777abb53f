package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/platform/blob"
)

// ListHandler handles HTTP requests for purchase lists
type ListHandler struct {
	state        Bookkeeper
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewListHandler caps create bodies at maxBodyBytes, which bounds the embedded image
func NewListHandler(logger *slog.Logger, state Bookkeeper, maxBodyBytes int64) *ListHandler {
	return &ListHandler{state: state, maxBodyBytes: maxBodyBytes, logger: logger}
}

func (h *ListHandler) List(c *gin.Context) {
	views := h.state.Lists(c.Query("q"))
	out := make([]ListResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newListResponse(v))
	}
	RespondOK(c, out)
}

func (h *ListHandler) Create(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondWithError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body is too large")
			return
		}
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var img *blob.Image
	if req.Image != "" {
		decoded, err := blob.DecodeDataURL(req.Image)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		img = &decoded
	}

	list, batch, err := h.state.AddList(c.Request.Context(), req.params(), img)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}

	view, err := h.state.List(list.ID)
	if err != nil {
		view = bookkeeping.ListView{List: list}
	}
	RespondWithSync(c, http.StatusCreated, newListResponse(view), batch)
}

func (h *ListHandler) Get(c *gin.Context) {
	view, err := h.state.List(c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, newListResponse(view))
}

func (h *ListHandler) Delete(c *gin.Context) {
	batch, err := h.state.DeleteList(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondWithSync(c, http.StatusOK, gin.H{"id": c.Param("id")}, batch)
}

// RecordPayment pays against the list in the list's own currency
func (h *ListHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	list, batch, err := h.state.RecordListPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}

	view, err := h.state.List(list.ID)
	if err != nil {
		view = bookkeeping.ListView{List: list}
	}
	RespondWithSync(c, http.StatusCreated, newListResponse(view), batch)
}
