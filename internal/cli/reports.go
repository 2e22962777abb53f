package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supplier-ledger/internal/domain/currency"
	"github.com/supplier-ledger/internal/ledger"
)

func newBalanceCommand(env Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <supplier-id>",
		Short: "Print a supplier's balance per currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, release, err := env.Ledger(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			sup, err := state.Supplier(args[0])
			if err != nil {
				return err
			}
			b := state.Balance(sup.ID)

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), b)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "supplier\t%s (%s)\n", sup.Name, sup.ID)
			fmt.Fprintf(w, "opening\t%s\n", ledger.TotalLabel(b.OpeningByCurrency))
			fmt.Fprintf(w, "lists\t%s\n", ledger.TotalLabel(b.ListsByCurrency))
			fmt.Fprintf(w, "paid\t%s\n", ledger.TotalLabel(b.TotalPaidByCurrency))
			fmt.Fprintf(w, "remaining\t%s\n", ledger.TotalLabel(b.RemainingByCurrency))
			return w.Flush()
		},
	}
}

func newDashboardCommand(env Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, release, err := env.Ledger(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			d := state.Dashboard()
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), d)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "suppliers\t%d\n", d.SupplierCount)
			fmt.Fprintf(w, "lists\t%d\n", d.ListCount)
			fmt.Fprintf(w, "remaining IQD\t%s\n", currency.Format(d.RemainingIQD, currency.IQD))
			fmt.Fprintf(w, "remaining USD\t%s\n", currency.Format(d.RemainingUSD, currency.USD))
			fmt.Fprintf(w, "paid IQD\t%s\n", currency.Format(d.PaidIQD, currency.IQD))
			fmt.Fprintf(w, "paid USD\t%s\n", currency.Format(d.PaidUSD, currency.USD))
			if d.AsymmetricIQD {
				fmt.Fprintln(w, "note\tremaining IQD excludes direct supplier payments")
			}
			return w.Flush()
		},
	}
}
