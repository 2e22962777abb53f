package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supplier-ledger/internal/config"
	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/logger"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, name collection.Name, dst any) (bool, error) {
	args := m.Called(ctx, name, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, name collection.Name, items any) error {
	args := m.Called(ctx, name, items)
	return args.Error(0)
}

func newBreaker(threshold uint32) *CircuitBreaker {
	return NewCircuitBreaker("store", config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		FailureThreshold: threshold,
	}, logger.Discard(), nil)
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	ctx := context.Background()
	next := new(MockStore)
	store := NewBreakerStore(next, newBreaker(3))

	var dst []string
	next.On("Load", ctx, collection.Suppliers, &dst).Return(true, nil).Once()
	next.On("Save", ctx, collection.Lists, []string{"a"}).Return(nil).Once()

	found, err := store.Load(ctx, collection.Suppliers, &dst)
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, store.Save(ctx, collection.Lists, []string{"a"}))

	next.AssertExpectations(t)
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	next := new(MockStore)
	breaker := newBreaker(2)
	store := NewBreakerStore(next, breaker)

	cause := shared.ErrStorage{Collection: "lists", Op: "save", Err: errors.New("timeout")}
	next.On("Save", ctx, collection.Lists, mock.Anything).Return(cause).Twice()

	for i := 0; i < 2; i++ {
		err := store.Save(ctx, collection.Lists, []string{})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrStorage{Collection: "lists"})
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())

	err := store.Save(ctx, collection.Lists, []string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, err, shared.ErrStorage{Collection: "lists"})

	next.AssertNumberOfCalls(t, "Save", 2)
}

func TestBreakerStore_WrapsPlainErrors(t *testing.T) {
	ctx := context.Background()
	next := new(MockStore)
	store := NewBreakerStore(next, newBreaker(5))

	var dst []string
	next.On("Load", ctx, collection.Activity, &dst).Return(false, errors.New("boom")).Once()

	found, err := store.Load(ctx, collection.Activity, &dst)
	assert.False(t, found)

	var storageErr shared.ErrStorage
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "activity", storageErr.Collection)
	assert.Equal(t, "load", storageErr.Op)
}
