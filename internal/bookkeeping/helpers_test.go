package bookkeeping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/collection"
)

var testNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// sequentialIDs hands out prefix-1, prefix-2, ...
type sequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *sequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// memoryStore keeps collections as JSON, like the remote backends do
type memoryStore struct {
	mu      sync.Mutex
	data    map[collection.Name][]byte
	saves   map[collection.Name]int
	failOn  map[collection.Name]error
	loadErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data:   make(map[collection.Name][]byte),
		saves:  make(map[collection.Name]int),
		failOn: make(map[collection.Name]error),
	}
}

func (m *memoryStore) Load(_ context.Context, name collection.Name, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return false, m.loadErr
	}
	raw, ok := m.data[name]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryStore) Save(_ context.Context, name collection.Name, items any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[name]; err != nil {
		return err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.data[name] = raw
	m.saves[name]++
	return nil
}

func (m *memoryStore) put(name collection.Name, items any) {
	raw, err := json.Marshal(items)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	m.data[name] = raw
	m.mu.Unlock()
}

func (m *memoryStore) saveCount(name collection.Name) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[name]
}

var errStoreDown = errors.New("store unavailable")

// MockDLQ mocks the DeadLetterPublisher interface
type MockDLQ struct {
	mock.Mock
}

func (m *MockDLQ) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

// MockPublisher mocks the ActivityPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishActivity(ctx context.Context, entry activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockBlob mocks the blob.Store interface
type MockBlob struct {
	mock.Mock
}

func (m *MockBlob) Upload(ctx context.Context, key string, data []byte, contentType string) string {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// gatedStore holds every Save until release is closed
type gatedStore struct {
	*memoryStore
	entered chan collection.Name
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		memoryStore: newMemoryStore(),
		entered:     make(chan collection.Name, 16),
		release:     make(chan struct{}),
	}
}

func (g *gatedStore) Save(ctx context.Context, name collection.Name, items any) error {
	g.entered <- name
	select {
	case <-g.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return g.memoryStore.Save(ctx, name, items)
}
