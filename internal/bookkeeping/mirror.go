package bookkeeping

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/platform/messaging/producers"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// ErrSuperseded marks a save skipped because a newer copy of the collection was already written
var ErrSuperseded = errors.New("save superseded by a newer snapshot")

// Sync statuses reported per collection
const (
	SyncPending    = "pending"
	SyncSynced     = metrics.OutcomeSynced
	SyncFailed     = metrics.OutcomeFailed
	SyncSuperseded = metrics.OutcomeSuperseded
)

// DeadLetterPublisher receives the payload of saves that failed
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
}

// Result is the future of one asynchronous collection save
type Result struct {
	Collection collection.Name
	done       chan struct{}
	err        error
}

func newResult(name collection.Name) *Result {
	return &Result{Collection: name, done: make(chan struct{})}
}

func (r *Result) complete(err error) {
	r.err = err
	close(r.done)
}

// Done is closed once the save has finished
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err is nil while the save is pending
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the save finishes or ctx ends
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status is one of the Sync* values
func (r *Result) Status() string {
	select {
	case <-r.done:
	default:
		return SyncPending
	}
	switch {
	case r.err == nil:
		return SyncSynced
	case errors.Is(r.err, ErrSuperseded):
		return SyncSuperseded
	default:
		return SyncFailed
	}
}

// Batch groups the saves triggered by one mutation
type Batch struct {
	results []*Result
}

// Results returns the individual futures
func (b *Batch) Results() []*Result {
	if b == nil {
		return nil
	}
	return b.results
}

// Statuses reports the current status of every save without blocking
func (b *Batch) Statuses() map[collection.Name]string {
	out := make(map[collection.Name]string, len(b.Results()))
	for _, r := range b.Results() {
		out[r.Collection] = r.Status()
	}
	return out
}

// Wait waits for every save, bounded by ctx, and reports their statuses
func (b *Batch) Wait(ctx context.Context) map[collection.Name]string {
	for _, r := range b.Results() {
		_ = r.Wait(ctx)
		if ctx.Err() != nil {
			break
		}
	}
	return b.Statuses()
}

// Mirror writes collection snapshots to the remote store on a worker pool.
// Saves never block the caller and are never retried.
type Mirror struct {
	store       collection.Store
	pool        *ants.Pool
	dlq         DeadLetterPublisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
	saveTimeout time.Duration

	mu      sync.Mutex
	issued  map[collection.Name]uint64
	written map[collection.Name]uint64
	locks   map[collection.Name]*sync.Mutex
	wg      sync.WaitGroup
}

type MirrorConfig struct {
	PoolSize    int
	SaveTimeout time.Duration
}

func NewMirror(
	store collection.Store,
	dlq DeadLetterPublisher,
	m *metrics.Metrics,
	config MirrorConfig,
	logger *slog.Logger,
) (*Mirror, error) {
	// Submit fails with ants.ErrPoolOverload instead of waiting for a free worker,
	// since callers hold the state lock while queueing saves
	pool, err := ants.NewPool(max(config.PoolSize, 1), ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	locks := make(map[collection.Name]*sync.Mutex)
	for _, name := range collection.Names() {
		locks[name] = &sync.Mutex{}
	}

	return &Mirror{
		store:       store,
		pool:        pool,
		dlq:         dlq,
		metrics:     m,
		logger:      logger,
		saveTimeout: config.SaveTimeout,
		issued:      make(map[collection.Name]uint64),
		written:     make(map[collection.Name]uint64),
		locks:       locks,
	}, nil
}

// Save queues items as the next copy of the named collection.
// It never waits for a worker: when the pool is saturated the save fails and is dead-lettered.
// items must not be mutated after the call.
func (m *Mirror) Save(name collection.Name, items any) *Result {
	result := newResult(name)

	m.mu.Lock()
	m.issued[name]++
	seq := m.issued[name]
	m.mu.Unlock()

	m.wg.Add(1)
	err := m.pool.Submit(func() {
		defer m.wg.Done()
		result.complete(m.write(name, seq, items))
	})
	if err != nil {
		m.wg.Done()
		m.logger.Error("Failed to submit save to worker pool",
			"collection", name,
			"error", err,
		)
		m.metrics.RecordStoreSave(string(name), metrics.OutcomeFailed, 0)
		m.fail(name, items, err)
		result.complete(err)
	}

	return result
}

func (m *Mirror) lockFor(name collection.Name) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[name] = lock
	}
	return lock
}

// write stores the snapshot numbered seq unless a later one already reached the store
func (m *Mirror) write(name collection.Name, seq uint64, items any) error {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	latest := m.written[name]
	m.mu.Unlock()
	if seq <= latest {
		m.logger.Debug("Skipping superseded save", "collection", name, "seq", seq, "written", latest)
		m.metrics.RecordStoreSave(string(name), metrics.OutcomeSuperseded, 0)
		return ErrSuperseded
	}

	ctx := context.Background()
	if m.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.saveTimeout)
		defer cancel()
	}

	start := time.Now()
	err := m.store.Save(ctx, name, items)
	elapsed := time.Since(start)
	if err != nil {
		m.metrics.RecordStoreSave(string(name), metrics.OutcomeFailed, elapsed)
		m.fail(name, items, err)
		return err
	}

	m.mu.Lock()
	if seq > m.written[name] {
		m.written[name] = seq
	}
	m.mu.Unlock()

	m.metrics.RecordStoreSave(string(name), metrics.OutcomeSynced, elapsed)
	m.logger.Debug("Collection saved", "collection", name, "seq", seq, "duration", elapsed)
	return nil
}

// fail logs the failure and hands the payload to the DLQ
func (m *Mirror) fail(name collection.Name, items any, cause error) {
	m.logger.Warn("Failed to save collection to remote store",
		"collection", name,
		"error", cause,
	)

	if m.dlq == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		m.logger.Error("Failed to marshal collection for DLQ", "collection", name, "error", err)
		return
	}
	err = m.dlq.PublishToDLQ(context.Background(), string(name), payload, producers.ReasonStoreSaveFailed)
	if err != nil && !errors.Is(err, producers.ErrDLQDisabled) {
		m.logger.Error("Failed to publish failed save to DLQ", "collection", name, "error", err)
	}
}

// Shutdown waits for queued saves and releases the pool
func (m *Mirror) Shutdown() {
	m.logger.Info("Shutting down mirror", "running_workers", m.pool.Running())
	m.wg.Wait()
	m.pool.Release()
}

// Running returns the number of running workers in the pool
func (m *Mirror) Running() int {
	return m.pool.Running()
}

// Capacity returns the capacity of the worker pool
func (m *Mirror) Capacity() int {
	return m.pool.Cap()
}
