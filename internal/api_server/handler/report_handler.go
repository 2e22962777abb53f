package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/domain/currency"
)

// ReportHandler serves the dashboard, the activity log and the currency registry
type ReportHandler struct {
	state  Bookkeeper
	logger *slog.Logger
}

func NewReportHandler(logger *slog.Logger, state Bookkeeper) *ReportHandler {
	return &ReportHandler{state: state, logger: logger}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	RespondOK(c, h.state.Dashboard())
}

func (h *ReportHandler) Activity(c *gin.Context) {
	RespondOK(c, h.state.Activity(c.Query("q")))
}

func (h *ReportHandler) Currencies(c *gin.Context) {
	RespondOK(c, currency.All())
}
