package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/supplier-ledger/internal/app"
	"github.com/supplier-ledger/internal/cli"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/logger"
)

// environment connects backends on demand so hash-password works without any
type environment struct{}

func (environment) load() (*config.Config, error) {
	cfg, err := config.LoadConfig("ledgerctl")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (e environment) Ledger(ctx context.Context) (cli.Ledger, func(), error) {
	cfg, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.Discard()

	store, closeStore, err := app.OpenStore(ctx, log, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	state := app.LoadReadOnlyState(ctx, log, cfg, store)
	return state, func() { closeStore(context.Background()) }, nil
}

func (e environment) Archive(ctx context.Context) (activity.ArchiveRepository, func(), error) {
	cfg, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	archive, closeArchive, err := app.OpenArchive(ctx, logger.Discard(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return archive, func() { closeArchive(context.Background()) }, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(environment{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
