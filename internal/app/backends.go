// Package app wires configuration into the concrete backends shared by the binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/data/mongo"
	"github.com/supplier-ledger/internal/data/postgres"
	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/ledger"
	"github.com/supplier-ledger/internal/platform/metrics"
	"github.com/supplier-ledger/internal/platform/persistence"
	"github.com/supplier-ledger/internal/platform/resilience"
)

// OpenStore connects the configured collection store behind a circuit breaker.
// The returned func closes the underlying connection.
func OpenStore(ctx context.Context, log *slog.Logger, cfg *config.Config, m *metrics.Metrics) (collection.Store, func(context.Context), error) {
	var (
		store   collection.Store
		closeFn func(context.Context)
	)

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		store = postgres.NewCollectionStore(log, db, shared.SystemClock{})
		closeFn = func(context.Context) { db.Close() }

	case config.StoreBackendMongo, "":
		db, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		store = mongo.NewCollectionStore(log, db.Database(), cfg.Store.Collection, db.Registry(), shared.SystemClock{})
		closeFn = func(ctx context.Context) {
			if err := db.Close(ctx); err != nil {
				log.Error("Error closing MongoDB connection", "error", err)
			}
		}

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	breaker := resilience.NewCircuitBreaker("collection_store", cfg.Breaker, log, m)
	return resilience.NewBreakerStore(store, breaker), closeFn, nil
}

// OpenArchive connects the MongoDB activity archive
func OpenArchive(ctx context.Context, log *slog.Logger, cfg *config.Config) (activity.ArchiveRepository, func(context.Context), error) {
	db, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
	}
	archive := mongo.NewActivityArchiveRepository(log, db.Database(), cfg.MongoDB.ArchiveCollection)
	return archive, func(ctx context.Context) {
		if err := db.Close(ctx); err != nil {
			log.Error("Error closing MongoDB connection", "error", err)
		}
	}, nil
}

// DashboardOptions maps the dashboard configuration
func DashboardOptions(cfg *config.Config) ledger.DashboardOptions {
	return ledger.DashboardOptions{FoldSupplierPaymentsIntoIQD: cfg.Dashboard.FoldIQDSupplierPayments}
}

// LoadReadOnlyState loads the collections into a state without a mirror, for one-shot reads
func LoadReadOnlyState(ctx context.Context, log *slog.Logger, cfg *config.Config, store collection.Store) *bookkeeping.State {
	state := bookkeeping.New(log, bookkeeping.Deps{
		Store:       store,
		Dashboard:   DashboardOptions(cfg),
		LoadTimeout: cfg.Store.LoadTimeout,
	})
	state.Load(ctx)
	return state
}
