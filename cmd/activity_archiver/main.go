package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supplier-ledger/internal/activity_archiver/consumer"
	"github.com/supplier-ledger/internal/app"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/logger"
	"github.com/supplier-ledger/internal/platform/messaging/consumers"
	"github.com/supplier-ledger/internal/platform/messaging/producers"
	"github.com/supplier-ledger/internal/platform/metrics"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("activity_archiver")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	m := metrics.New(cfg.Application.Name)

	log.Info("Starting Activity Archiver",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	archive, closeArchive, err := app.OpenArchive(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize activity archive", "error", err)
		os.Exit(1)
	}

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// A nil producer must stay a nil interface, otherwise undecodable messages would never commit
	var dlq producers.DeadLetterPublisher
	if dlqProducer != nil {
		dlq = dlqProducer
	}

	handler := consumer.NewActivityEventHandler(log, archive, dlq, m)
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.ActivityTopic, cfg.Kafka.ConsumerGroup, handler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to activity topic", "error", err)
		os.Exit(1)
	}

	// Metrics only; the archiver serves no API
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	log.Info("Waiting for consumer to stop...")
	done := make(chan struct{})
	go func() {
		kafkaConsumer.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("Consumer stopped")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	if err = metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping metrics server", "error", err)
	}
	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}
	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}
	closeArchive(shutdownCtx)

	if serviceErr != nil {
		log.Error("Activity Archiver shutdown with errors", "error", serviceErr)
	} else {
		log.Info("Activity Archiver shutdown completed successfully")
	}
}
