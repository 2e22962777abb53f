package api_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/api_server/handler"
	"github.com/supplier-ledger/internal/api_server/middleware"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/platform/auth"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
	cfg        config.ServerConfig
}

// NewServer creates and configures a new HTTP server over the bookkeeping state.
// gate may be nil, which leaves every route open.
func NewServer(
	log *slog.Logger,
	cfg *config.Config,
	state handler.Bookkeeper,
	renderer handler.PageRenderer,
	gate *auth.Gate,
	m *metrics.Metrics,
) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	h := routes{
		suppliers: handler.NewSupplierHandler(log, state),
		lists:     handler.NewListHandler(log, state, cfg.Server.MaxUploadBytes),
		reports:   handler.NewReportHandler(log, state),
		views:     handler.NewViewHandler(log, state, renderer),
	}

	var sessionGate gin.HandlerFunc
	if gate != nil {
		h.auth = handler.NewAuthHandler(log, gate, cfg.Auth.CookieName)
		sessionGate = middleware.RequireSession(gate, cfg.Auth.CookieName)
	}

	setupRouter(log, httpRouter, m, sessionGate, h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
		cfg:        cfg.Server,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server, waiting at most ShutdownTimeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx := ctx
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
