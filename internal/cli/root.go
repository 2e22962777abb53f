// Package cli implements ledgerctl, the operator command line next to the HTTP server.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/supplier-ledger/internal/domain/activity"
	"github.com/supplier-ledger/internal/domain/supplier"
	"github.com/supplier-ledger/internal/ledger"
)

var version = "1.0.0"

// Ledger is the read side of the loaded bookkeeping state
type Ledger interface {
	Supplier(id string) (supplier.Supplier, error)
	Balance(supplierID string) ledger.BalanceBreakdown
	Dashboard() ledger.Dashboard
}

// Environment connects the backends a command needs. The returned func releases them.
type Environment interface {
	Ledger(ctx context.Context) (Ledger, func(), error)
	Archive(ctx context.Context) (activity.ArchiveRepository, func(), error)
}

// NewRootCommand builds the ledgerctl command tree over env
func NewRootCommand(env Environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operator tools for the supplier ledger",
		Long: `ledgerctl reads the same configuration as api_server and works against the
remote collection store and the activity archive.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Print results as JSON")

	root.AddCommand(
		newHashPasswordCommand(),
		newBalanceCommand(env),
		newDashboardCommand(env),
		newArchiveCommand(env),
	)
	return root
}

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
