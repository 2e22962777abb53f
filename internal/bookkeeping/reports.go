package bookkeeping

import (
	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/ledger"
)

// Activity searches the log, newest first
func (s *State) Activity(query string) []activity.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Search(query)
}

// Snapshot is a deep copy of suppliers and lists for the aggregator
func (s *State) Snapshot() ledger.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Balance recomputes the supplier's per-currency position
func (s *State) Balance(supplierID string) ledger.BalanceBreakdown {
	return ledger.ComputeBalance(s.Snapshot(), supplierID)
}

// Dashboard recomputes the cross-supplier summary
func (s *State) Dashboard() ledger.Dashboard {
	return ledger.ComputeDashboard(s.Snapshot(), s.dashboard)
}

// Statement lists every payment made to the supplier, newest first
func (s *State) Statement(supplierID string) []ledger.StatementLine {
	return ledger.SupplierStatement(s.Snapshot(), supplierID)
}
