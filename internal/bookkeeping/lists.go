package bookkeeping

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/platform/blob"
)

// ListView is a list together with its supplier's display name
type ListView struct {
	purchase.List
	SupplierName string `json:"supplierName"`
}

// AddList validates params, uploads the optional image and appends the list.
// A failed upload leaves the image empty.
func (s *State) AddList(ctx context.Context, params purchase.Params, img *blob.Image) (purchase.List, *Batch, error) {
	params.Image = ""
	list, err := purchase.New(s.ids.NewID(), params, s.clock.Now())
	if err != nil {
		return purchase.List{}, nil, err
	}
	if !s.supplierExists(list.SupplierID) {
		return purchase.List{}, nil, shared.Invalid("supplierId", shared.ErrNotFound{Kind: "supplier", ID: list.SupplierID})
	}

	if img != nil && len(img.Data) > 0 {
		list.Image = s.blob.Upload(ctx, blob.ListImageKey(list.ID, *img), img.Data, img.ContentType)
		if list.Image == "" {
			s.logger.Warn("List image upload failed, saving list without image", "list_id", list.ID)
		}
	}

	s.mu.Lock()
	if s.supplierIndex(list.SupplierID) < 0 {
		s.mu.Unlock()
		return purchase.List{}, nil, shared.Invalid("supplierId", shared.ErrNotFound{Kind: "supplier", ID: list.SupplierID})
	}
	s.lists = append(s.lists, *list)
	entry := s.record(activity.TypeList, titleAddList+list.Number, currency.Format(list.Amount, list.Currency))
	batch := s.sync(collection.Lists, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("List added",
		"list_id", list.ID,
		"supplier_id", list.SupplierID,
		"currency", list.Currency,
	)
	return list.Clone(), batch, nil
}

// DeleteList removes the list and with it every payment recorded against it
func (s *State) DeleteList(ctx context.Context, id string) (*Batch, error) {
	s.mu.Lock()
	idx := s.listIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, shared.ErrNotFound{Kind: "list", ID: id}
	}
	s.lists = append(s.lists[:idx:idx], s.lists[idx+1:]...)
	entry := s.record(activity.TypeDelete, titleDeleteList, id)
	batch := s.sync(collection.Lists, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("List deleted", "list_id", id)
	return batch, nil
}

// RecordListPayment pays amount, in the list currency, against the list
func (s *State) RecordListPayment(ctx context.Context, id string, amount decimal.Decimal) (purchase.List, *Batch, error) {
	s.mu.Lock()
	idx := s.listIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return purchase.List{}, nil, shared.ErrNotFound{Kind: "list", ID: id}
	}

	list := &s.lists[idx]
	payment, err := list.RecordPayment(s.ids.NewID(), amount, s.clock.Now())
	if err != nil {
		s.mu.Unlock()
		return purchase.List{}, nil, err
	}
	updated := list.Clone()
	entry := s.record(activity.TypePayment, titleListPayment+list.Number, currency.Format(payment.Amount, list.Currency))
	batch := s.sync(collection.Lists, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("List payment recorded",
		"list_id", id,
		"payment_id", payment.ID,
		"status", updated.Status(),
	)
	return updated, batch, nil
}

// Lists filters by supplier name, number, amount or paid
func (s *State) Lists(query string) []ListView {
	q := shared.NormalizeQuery(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ListView, 0, len(s.lists))
	for _, l := range s.lists {
		name := s.supplierName(l.SupplierID)
		if l.Matches(q, name) {
			out = append(out, ListView{List: l.Clone(), SupplierName: name})
		}
	}
	return out
}

// List looks up one list
func (s *State) List(id string) (ListView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.listIndex(id); idx >= 0 {
		l := s.lists[idx]
		return ListView{List: l.Clone(), SupplierName: s.supplierName(l.SupplierID)}, nil
	}
	return ListView{}, shared.ErrNotFound{Kind: "list", ID: id}
}

// ListsForSupplier returns the supplier's lists in collection order
func (s *State) ListsForSupplier(supplierID string) []purchase.List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]purchase.List, 0)
	for _, l := range s.lists {
		if l.SupplierID == supplierID {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (s *State) supplierExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supplierIndex(strings.TrimSpace(id)) >= 0
}

// supplierName is "" for orphaned lists; the caller holds the lock
func (s *State) supplierName(id string) string {
	if idx := s.supplierIndex(id); idx >= 0 {
		return s.suppliers[idx].Name
	}
	return ""
}
