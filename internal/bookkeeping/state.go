// Package bookkeeping owns the application state: suppliers, purchase lists and the activity log.
// Every mutation updates the local copy first and then mirrors the changed collections
// to the remote store in the background.
package bookkeeping

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
	"github.com/supplier-ledger/internal/platform/blob"
	"github.com/supplier-ledger/internal/platform/messaging/producers"
	"github.com/supplier-ledger/internal/platform/metrics"
)

// Saver queues a collection snapshot for the remote store
type Saver interface {
	Save(name collection.Name, items any) *Result
}

// Deps are the collaborators of State. Nil fields fall back to inert defaults.
type Deps struct {
	Store       collection.Store
	Mirror      Saver
	Blob        blob.Store
	Publisher   producers.ActivityPublisher
	Metrics     *metrics.Metrics
	Clock       shared.Clock
	IDs         shared.IDGenerator
	ActivityIDs shared.IDGenerator
	Dashboard   ledger.DashboardOptions
	LoadTimeout time.Duration
}

// State is the in-memory source of truth; the remote store is a lagging mirror of it
type State struct {
	mu        sync.RWMutex
	suppliers []supplier.Supplier
	lists     []purchase.List
	log       *activity.Log

	store       collection.Store
	mirror      Saver
	blob        blob.Store
	publisher   producers.ActivityPublisher
	metrics     *metrics.Metrics
	clock       shared.Clock
	ids         shared.IDGenerator
	activityIDs shared.IDGenerator
	dashboard   ledger.DashboardOptions
	loadTimeout time.Duration
	logger      *slog.Logger
}

func New(logger *slog.Logger, deps Deps) *State {
	s := &State{
		suppliers:   []supplier.Supplier{},
		lists:       []purchase.List{},
		log:         activity.NewLog(nil),
		store:       deps.Store,
		mirror:      deps.Mirror,
		blob:        deps.Blob,
		publisher:   deps.Publisher,
		metrics:     deps.Metrics,
		clock:       deps.Clock,
		ids:         deps.IDs,
		activityIDs: deps.ActivityIDs,
		dashboard:   deps.Dashboard,
		loadTimeout: deps.LoadTimeout,
		logger:      logger,
	}
	if s.blob == nil {
		s.blob = blob.Disabled{}
	}
	if s.clock == nil {
		s.clock = shared.SystemClock{}
	}
	if s.ids == nil {
		s.ids = shared.RandomIDs{}
	}
	if s.activityIDs == nil {
		s.activityIDs = shared.TimeOrderedIDs{}
	}
	return s
}

// Load replaces the local state with the remote collections.
// A missing or unreadable collection starts empty; the error is only logged.
func (s *State) Load(ctx context.Context) {
	var (
		suppliers []supplier.Supplier
		lists     []purchase.List
		entries   []activity.Entry
	)
	s.load(ctx, collection.Suppliers, &suppliers)
	s.load(ctx, collection.Lists, &lists)
	s.load(ctx, collection.Activity, &entries)

	if suppliers == nil {
		suppliers = []supplier.Supplier{}
	}
	if lists == nil {
		lists = []purchase.List{}
	}
	for i := range suppliers {
		suppliers[i].Normalize()
	}
	for i := range lists {
		lists[i].Normalize()
	}

	s.mu.Lock()
	s.suppliers = suppliers
	s.lists = lists
	s.log = activity.NewLog(entries)
	s.mu.Unlock()

	s.logger.Info("Application state loaded",
		"suppliers", len(suppliers),
		"lists", len(lists),
		"activity", len(entries),
	)
}

func (s *State) load(ctx context.Context, name collection.Name, dst any) {
	if s.store == nil {
		return
	}
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	found, err := s.store.Load(ctx, name, dst)
	if err != nil {
		s.logger.Warn("Failed to load collection, starting empty",
			"collection", name,
			"error", err,
		)
		return
	}
	if !found {
		s.logger.Info("Collection not found in remote store, starting empty", "collection", name)
	}
}

// record appends an activity entry; the caller holds the write lock
func (s *State) record(t activity.Type, title, meta string) activity.Entry {
	entry, err := activity.NewEntry(s.activityIDs.NewID(), t, title, meta, s.clock.Now())
	if err != nil {
		// types are constants at every call site
		s.logger.Error("Failed to build activity entry", "type", t, "error", err)
		return activity.Entry{}
	}
	s.log.Append(entry)
	return entry
}

// publish announces the entry, best effort
func (s *State) publish(ctx context.Context, entry activity.Entry) {
	if s.publisher == nil || entry.ID == "" {
		return
	}
	err := s.publisher.PublishActivity(context.WithoutCancel(ctx), entry)
	s.metrics.RecordActivityPublished(string(entry.Type), err == nil)
	if err != nil {
		s.logger.Warn("Failed to publish activity entry",
			"activity_id", entry.ID,
			"type", entry.Type,
			"error", err,
		)
	}
}

// sync queues the named collections; the caller holds the lock
func (s *State) sync(names ...collection.Name) *Batch {
	batch := &Batch{}
	if s.mirror == nil {
		return batch
	}
	for _, name := range names {
		batch.results = append(batch.results, s.mirror.Save(name, s.copyOf(name)))
	}
	return batch
}

func (s *State) copyOf(name collection.Name) any {
	switch name {
	case collection.Suppliers:
		return cloneSuppliers(s.suppliers)
	case collection.Lists:
		return cloneLists(s.lists)
	case collection.Activity:
		return s.log.Entries()
	default:
		return nil
	}
}

func cloneSuppliers(in []supplier.Supplier) []supplier.Supplier {
	out := make([]supplier.Supplier, len(in))
	for i, sup := range in {
		out[i] = sup.Clone()
	}
	return out
}

func cloneLists(in []purchase.List) []purchase.List {
	out := make([]purchase.List, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}

func (s *State) supplierIndex(id string) int {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) listIndex(id string) int {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies suppliers and lists; the caller holds at least the read lock
func (s *State) snapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Suppliers: cloneSuppliers(s.suppliers),
		Lists:     cloneLists(s.lists),
	}
}
