package cmd

import (
	"fmt"

	"github.com/harrisonrobin/taskdump/pkg/config"
	"github.com/spf13/cobra"
)

func newSetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-list TASKLIST_ID",
		Short: "Save the default task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetTaskListID(args[0]); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default task list set to: %s\n", args[0])
			return nil
		},
	}
}
