package bookkeeping

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/domain/shared"
	"github.com/supplier-ledger/internal/domain/supplier"
)

// Activity titles
const (
	titleAddSupplier     = "إضافة مورد: "
	titleDeleteSupplier  = "حذف مورد: "
	titleSupplierPayment = "دفع للمورد: "
	titleAddList         = "قائمة جديدة: "
	titleDeleteList      = "حذف قائمة"
	titleListPayment     = "دفع جزئي: "
)

// AddSupplier validates params and appends a new supplier
func (s *State) AddSupplier(ctx context.Context, params supplier.Params) (supplier.Supplier, *Batch, error) {
	sup, err := supplier.New(s.ids.NewID(), params)
	if err != nil {
		return supplier.Supplier{}, nil, err
	}

	s.mu.Lock()
	s.suppliers = append(s.suppliers, *sup)
	entry := s.record(activity.TypeSupplier, titleAddSupplier+sup.Name, sup.Phone)
	batch := s.sync(collection.Suppliers, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("Supplier added", "supplier_id", sup.ID)
	return sup.Clone(), batch, nil
}

// DeleteSupplier removes the supplier. Its lists are kept and become orphaned.
func (s *State) DeleteSupplier(ctx context.Context, id string) (*Batch, error) {
	s.mu.Lock()
	idx := s.supplierIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, shared.ErrNotFound{Kind: "supplier", ID: id}
	}
	name := s.suppliers[idx].Name
	s.suppliers = append(s.suppliers[:idx:idx], s.suppliers[idx+1:]...)
	entry := s.record(activity.TypeDelete, titleDeleteSupplier+name, "")
	batch := s.sync(collection.Suppliers, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("Supplier deleted", "supplier_id", id)
	return batch, nil
}

// RecordSupplierPayment appends a direct payment to the supplier
func (s *State) RecordSupplierPayment(ctx context.Context, id string, amount decimal.Decimal, code currency.Code) (shared.Payment, *Batch, error) {
	s.mu.Lock()
	idx := s.supplierIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return shared.Payment{}, nil, shared.ErrNotFound{Kind: "supplier", ID: id}
	}

	sup := &s.suppliers[idx]
	payment, err := sup.RecordPayment(s.ids.NewID(), amount, code, s.clock.Now())
	if err != nil {
		s.mu.Unlock()
		return shared.Payment{}, nil, err
	}
	entry := s.record(activity.TypePayment, titleSupplierPayment+sup.Name, currency.Format(payment.Amount, payment.Currency))
	batch := s.sync(collection.Suppliers, collection.Activity)
	s.mu.Unlock()

	s.publish(ctx, entry)
	s.logger.Info("Supplier payment recorded",
		"supplier_id", id,
		"payment_id", payment.ID,
		"currency", payment.Currency,
	)
	return payment, batch, nil
}

// Suppliers filters by name, phone or address
func (s *State) Suppliers(query string) []supplier.Supplier {
	q := shared.NormalizeQuery(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]supplier.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if sup.Matches(q) {
			out = append(out, sup.Clone())
		}
	}
	return out
}

// Supplier looks up one supplier
func (s *State) Supplier(id string) (supplier.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.supplierIndex(id); idx >= 0 {
		return s.suppliers[idx].Clone(), nil
	}
	return supplier.Supplier{}, shared.ErrNotFound{Kind: "supplier", ID: id}
}
