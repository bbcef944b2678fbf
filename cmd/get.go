package cmd

import (
	"fmt"

	"github.com/harrisonrobin/taskdump/pkg/export"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Print a single task as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			id, err := a.listID(listID)
			if err != nil {
				return err
			}

			client, err := a.tasksClient(cmd)
			if err != nil {
				return err
			}

			task, err := client.GetTask(cmd.Context(), id, args[0])
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %s has no ID in the API response", args[0])
			}

			text, err := export.ToCSV([]model.Task{*task})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "task list ID (overrides TASKLIST_ID)")
	return cmd
}
