package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/supplier-ledger/internal/api_server"
	"github.com/supplier-ledger/internal/app"
	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/logger"
	"github.com/supplier-ledger/internal/platform/auth"
	"github.com/supplier-ledger/internal/platform/blob"
	"github.com/supplier-ledger/internal/platform/messaging/producers"
	"github.com/supplier-ledger/internal/platform/metrics"
	"github.com/supplier-ledger/internal/render"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	m := metrics.New(cfg.Application.Name)

	store, closeStore, err := app.OpenStore(appCtx, log, cfg, m)
	if err != nil {
		log.Error("Failed to initialize collection store", "error", err)
		os.Exit(1)
	}

	// Kafka is optional; without it activity is only kept in the in-app log
	var (
		dlqProducer      *producers.DLQProducer
		activityProducer *producers.ActivityEventProducer
		dlq              bookkeeping.DeadLetterPublisher
		publisher        producers.ActivityPublisher
	)
	if cfg.Kafka.Enabled {
		dlqProducer, err = producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize DLQ Kafka producer", "error", err)
			os.Exit(1)
		}
		if dlqProducer != nil {
			dlq = dlqProducer
		}

		activityProducer, err = producers.NewActivityEventProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize activity Kafka producer", "error", err)
			os.Exit(1)
		}
		publisher = activityProducer
	}

	mirror, err := bookkeeping.NewMirror(store, dlq, m, bookkeeping.MirrorConfig{
		PoolSize:    cfg.WorkerPool.Size,
		SaveTimeout: cfg.Store.SaveTimeout,
	}, log)
	if err != nil {
		log.Error("Failed to initialize mirror worker pool", "error", err)
		os.Exit(1)
	}

	var images blob.Store = blob.Disabled{}
	if cfg.Blob.Enabled {
		s3Store, err := blob.NewS3Store(appCtx, log, &cfg.Blob)
		if err != nil {
			log.Error("Failed to initialize blob store", "error", err)
			os.Exit(1)
		}
		if err := s3Store.EnsureBucket(appCtx); err != nil {
			log.Warn("Blob bucket is not available, uploads will fail", "bucket", cfg.Blob.Bucket, "error", err)
		}
		images = s3Store
	}

	state := bookkeeping.New(log, bookkeeping.Deps{
		Store:       store,
		Mirror:      mirror,
		Blob:        images,
		Publisher:   publisher,
		Metrics:     m,
		Clock:       shared.SystemClock{},
		IDs:         shared.RandomIDs{},
		ActivityIDs: shared.TimeOrderedIDs{},
		Dashboard:   app.DashboardOptions(cfg),
		LoadTimeout: cfg.Store.LoadTimeout,
	})
	state.Load(appCtx)

	renderer, err := render.New()
	if err != nil {
		log.Error("Failed to parse page templates", "error", err)
		os.Exit(1)
	}

	var gate *auth.Gate
	if cfg.Auth.Enabled {
		gate, err = auth.NewGate(cfg.Auth, shared.SystemClock{})
		if err != nil {
			log.Error("Failed to initialize password gate", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("Password gate is disabled, every route is open")
	}

	server := api_server.NewServer(log, cfg, state, renderer, gate, m)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain queued saves before the store goes away
	mirror.Shutdown()

	if activityProducer != nil {
		if err = activityProducer.Close(); err != nil {
			log.Error("Error closing activity Kafka producer", "error", err)
		}
	}
	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}

	closeStore(shutdownCtx)

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
