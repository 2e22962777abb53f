// Package postgres provides the PostgreSQL backend of the remote collection store.
// Each mirrored collection is one row whose JSONB payload is replaced on every save.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/platform/persistence"
)

// CollectionStore implements collection.Store on PostgreSQL
type CollectionStore struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	clock   shared.Clock
	logger  *slog.Logger
}

// NewCollectionStore creates a new PostgreSQL collection store.
// It expects db.Pool() to satisfy persistence.Querier.
func NewCollectionStore(logger *slog.Logger, db *persistence.PostgresDB, clock shared.Clock) *CollectionStore {
	return &CollectionStore{
		querier: db.Pool(),
		clock:   clock,
		logger:  logger,
	}
}

var _ collection.Store = (*CollectionStore)(nil)

// Load decodes the payload of the named row into dst.
// A missing row, or a NULL payload, reports found == false.
func (s *CollectionStore) Load(ctx context.Context, name collection.Name, dst any) (bool, error) {
	query := `
		SELECT payload
		FROM collections
		WHERE name = $1
	`

	var payload []byte
	err := s.querier.QueryRow(ctx, query, string(name)).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to load collection", "collection", name, "error", err)
		return false, shared.ErrStorage{Collection: string(name), Op: "load", Err: err}
	}

	if len(payload) == 0 || string(payload) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.Error("Failed to decode collection", "collection", name, "error", err)
		return false, shared.ErrStorage{Collection: string(name), Op: "load", Err: fmt.Errorf("failed to decode payload: %w", err)}
	}

	return true, nil
}

// Save upserts the named row with items as its payload
func (s *CollectionStore) Save(ctx context.Context, name collection.Name, items any) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return shared.ErrStorage{Collection: string(name), Op: "save", Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	query := `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	_, err = s.querier.Exec(ctx, query, string(name), payload, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to save collection", "collection", name, "error", err)
		return shared.ErrStorage{Collection: string(name), Op: "save", Err: err}
	}

	return nil
}
