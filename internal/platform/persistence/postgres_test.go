package persistence

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/logger"
)

func TestPostgresDB_Pool(t *testing.T) {
	var nilPool *pgxpool.Pool
	db := &PostgresDB{
		pool:   nilPool,
		logger: logger.Discard(),
	}
	assert.Equal(t, nilPool, db.Pool())
}

func TestNewPostgresDB_MigrationsRequired(t *testing.T) {
	cfg := &config.PostgresConfig{URL: "postgres://localhost/test"}

	db, err := NewPostgresDB(context.Background(), logger.Discard(), cfg)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.EqualError(t, err, "migrations path cannot be empty")
}
