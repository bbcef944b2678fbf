package cmd

import (
	"fmt"
	"io"

	"github.com/harrisonrobin/taskdump/pkg/google"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/spf13/cobra"
)

func newListsCmd() *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the task lists of the account, to find a TASKLIST_ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			client, err := a.tasksClient(cmd)
			if err != nil {
				return err
			}

			lists, err := client.ListTaskLists(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printTaskLists(cmd.OutOrStdout(), lists)
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", google.DefaultListLimit, "maximum number of lists to show")
	return cmd
}

func printTaskLists(w io.Writer, lists []model.TaskList) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No task lists found.")
		return
	}
	for _, tl := range lists {
		fmt.Fprintf(w, "%s\t%s\n", tl.ID, tl.Title)
	}
}
