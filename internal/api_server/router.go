package api_server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/api_server/handler"
	"github.com/supplier-ledger/internal/api_server/middleware"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// routes bundles the handlers mounted by setupRouter
type routes struct {
	auth      *handler.AuthHandler
	suppliers *handler.SupplierHandler
	lists     *handler.ListHandler
	reports   *handler.ReportHandler
	views     *handler.ViewHandler
}

// setupRouter configures API routes and middleware for the application.
// gate is nil when the password gate is disabled.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	m *metrics.Metrics,
	gate gin.HandlerFunc,
	h routes,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if h.auth != nil {
		r.POST("/api/v1/auth/login", h.auth.Login)
	}

	protected := r.Group("")
	if gate != nil {
		protected.Use(gate)
	}

	// API v1 endpoints
	v1 := protected.Group("/api/v1")
	{
		v1.GET("/currencies", h.reports.Currencies)
		v1.GET("/dashboard", h.reports.Dashboard)
		v1.GET("/activity", h.reports.Activity)

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", h.suppliers.List)
			suppliers.POST("", h.suppliers.Create)
			suppliers.GET("/:id", h.suppliers.Get)
			suppliers.DELETE("/:id", h.suppliers.Delete)
			suppliers.GET("/:id/balance", h.suppliers.Balance)
			suppliers.GET("/:id/statement", h.suppliers.Statement)
			suppliers.POST("/:id/payments", h.suppliers.RecordPayment)
		}

		lists := v1.Group("/lists")
		{
			lists.GET("", h.lists.List)
			lists.POST("", h.lists.Create)
			lists.GET("/:id", h.lists.Get)
			lists.DELETE("/:id", h.lists.Delete)
			lists.POST("/:id/payments", h.lists.RecordPayment)
		}
	}

	// HTML pages
	views := protected.Group("/views")
	{
		views.GET("/dashboard", h.views.Dashboard)
		views.GET("/suppliers", h.views.Suppliers)
		views.GET("/suppliers/:id", h.views.Supplier)
		views.GET("/lists", h.views.Lists)
		views.GET("/lists/:id", h.views.List)
		views.GET("/activity", h.views.Activity)
	}

	printable := protected.Group("/print")
	{
		printable.GET("/suppliers/:id", h.views.PrintSupplier)
		printable.GET("/lists/:id", h.views.PrintList)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/views/dashboard")
	})
}
