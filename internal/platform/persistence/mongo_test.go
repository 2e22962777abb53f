package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/logger"
)

func TestNewMongoDB_InvalidURI(t *testing.T) {
	cfg := &config.MongoDBConfig{
		URI:         "not-a-mongo-uri",
		Database:    "testdb",
		Timeout:     time.Second,
		MaxPoolSize: 1,
		MinPoolSize: 1,
	}

	db, err := NewMongoDB(context.Background(), logger.Discard(), cfg)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to MongoDB")
}

func TestMongoDB_Accessors(t *testing.T) {
	reg := NewBSONRegistry()
	mdb := &MongoDB{logger: logger.Discard(), registry: reg}
	assert.Same(t, reg, mdb.Registry())
	assert.Nil(t, mdb.Database())
}
