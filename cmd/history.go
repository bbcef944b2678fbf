package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/harrisonrobin/taskdump/pkg/index"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var forget []string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest export of every list",
		Long: `Show the latest export of every list.

With --forget the given lists are removed from the history instead. The
exported files themselves are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := index.NewExportIndex()
			if err != nil {
				return fmt.Errorf("could not open export index: %w", err)
			}
			if len(forget) > 0 {
				return forgetExports(cmd.OutOrStdout(), idx, forget)
			}
			printHistory(cmd.OutOrStdout(), idx)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&forget, "forget", nil, "task list IDs to remove from the history")
	return cmd
}

func printHistory(w io.Writer, idx *index.ExportIndex) {
	ids := idx.ListIDs()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No exports yet.")
		return
	}
	sort.Strings(ids)
	for _, id := range ids {
		r, _ := idx.Get(id)
		fmt.Fprintf(w, "%s\t%s\t%d rows\t%s\n", id, r.ExportedAt.UTC().Format(time.RFC3339), r.Rows, r.Path)
	}
}

func forgetExports(w io.Writer, idx *index.ExportIndex, ids []string) error {
	for _, id := range ids {
		if _, ok := idx.Get(id); !ok {
			fmt.Fprintf(w, "No export recorded for %s\n", id)
			continue
		}
		idx.Remove(id)
		fmt.Fprintf(w, "Forgot %s\n", id)
	}
	if err := idx.Save(); err != nil {
		return fmt.Errorf("could not save export index: %w", err)
	}
	return nil
}
