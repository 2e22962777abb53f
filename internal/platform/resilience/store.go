package resilience

import (
	"context"
	"errors"

	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/shared"
)

// BreakerStore guards a collection.Store with a circuit breaker.
// While the breaker is open, calls fail fast with a storage error.
type BreakerStore struct {
	next    collection.Store
	breaker *CircuitBreaker
}

// NewBreakerStore wraps next
func NewBreakerStore(next collection.Store, breaker *CircuitBreaker) *BreakerStore {
	return &BreakerStore{next: next, breaker: breaker}
}

var _ collection.Store = (*BreakerStore)(nil)

func (s *BreakerStore) Load(ctx context.Context, name collection.Name, dst any) (bool, error) {
	var found bool
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		found, err = s.next.Load(ctx, name, dst)
		return err
	})
	if err != nil {
		return false, asStorageError(name, "load", err)
	}
	return found, nil
}

func (s *BreakerStore) Save(ctx context.Context, name collection.Name, items any) error {
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.Save(ctx, name, items)
	})
	if err != nil {
		return asStorageError(name, "save", err)
	}
	return nil
}

func asStorageError(name collection.Name, op string, err error) error {
	var storageErr shared.ErrStorage
	if errors.As(err, &storageErr) {
		return err
	}
	return shared.ErrStorage{Collection: string(name), Op: op, Err: err}
}
