package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/logger"
)

func TestOpenStore_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "sqlite"}}

	store, closeFn, err := OpenStore(context.Background(), logger.Discard(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Nil(t, store)
	assert.Nil(t, closeFn)
}

func TestDashboardOptions(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, DashboardOptions(cfg).FoldSupplierPaymentsIntoIQD)

	cfg.Dashboard.FoldIQDSupplierPayments = true
	assert.True(t, DashboardOptions(cfg).FoldSupplierPaymentsIntoIQD)
}
