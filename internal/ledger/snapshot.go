// Package ledger aggregates supplier balances across currencies.
// Every function here is pure: it reads a Snapshot and returns derived figures.
package ledger

import (
	"github.com/supplier-ledger/internal/domain/purchase"
	"github.com/supplier-ledger/internal/domain/supplier"
)

// Snapshot is the read-only view of suppliers and lists the aggregator works over
type Snapshot struct {
	Suppliers []supplier.Supplier
	Lists     []purchase.List
}

// Supplier finds a supplier by id
func (s Snapshot) Supplier(id string) (supplier.Supplier, bool) {
	for _, sup := range s.Suppliers {
		if sup.ID == id {
			return sup, true
		}
	}
	return supplier.Supplier{}, false
}

// List finds a list by id
func (s Snapshot) List(id string) (purchase.List, bool) {
	for _, l := range s.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return purchase.List{}, false
}

// ListsForSupplier returns the lists referencing supplierID, in collection order
func (s Snapshot) ListsForSupplier(supplierID string) []purchase.List {
	out := make([]purchase.List, 0)
	for _, l := range s.Lists {
		if l.SupplierID == supplierID {
			out = append(out, l)
		}
	}
	return out
}

// SupplierName resolves the display name for a list's supplier; orphaned lists get an empty name
func (s Snapshot) SupplierName(supplierID string) string {
	if sup, ok := s.Supplier(supplierID); ok {
		return sup.Name
	}
	return ""
}
