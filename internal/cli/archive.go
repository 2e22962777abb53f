package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supplier-ledger/internal/domain/activity"
)

const maxPerPage = 500

// archivePage is the JSON shape of one archive page
type archivePage struct {
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
	Total   int64             `json:"total"`
	Entries []*activity.Entry `json:"entries"`
}

func newArchiveCommand(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Page through the archived activity history, newest first",
		Example: `  ledgerctl archive
  ledgerctl archive --page 3 --per-page 100 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")
			if page < 1 {
				return errors.New("page must be at least 1")
			}
			if perPage < 1 || perPage > maxPerPage {
				return fmt.Errorf("per-page must be between 1 and %d", maxPerPage)
			}

			archive, release, err := env.Archive(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			total, err := archive.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count archived entries: %w", err)
			}
			entries, err := archive.List(cmd.Context(), perPage, (page-1)*perPage)
			if err != nil {
				return fmt.Errorf("failed to list archived entries: %w", err)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), archivePage{Page: page, PerPage: perPage, Total: total, Entries: entries})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tTITLE\tMETA")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.UTC().Format("2006-01-02 15:04"), e.Type, e.Title, e.Meta)
			}
			fmt.Fprintf(w, "\npage %d, %d of %d entries\n", page, len(entries), total)
			return w.Flush()
		},
	}
	cmd.Flags().Int("page", 1, "Page number, starting at 1")
	cmd.Flags().Int("per-page", 50, "Entries per page")
	return cmd
}
