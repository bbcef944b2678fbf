package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrisonrobin/taskdump/pkg/export"
	"github.com/harrisonrobin/taskdump/pkg/index"
	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/spf13/cobra"
)

// taskLister is the part of google.TasksClient the export needs.
type taskLister interface {
	ListTasks(ctx context.Context, listID string, limit int64) ([]model.Task, error)
}

func newExportCmd() *cobra.Command {
	var (
		listID string
		limit  int64
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tasks of a list to a timestamped CSV file",
		Long: `Fetch up to --limit tasks of the selected list, drop records without an ID
and write them as CSV to <out>/tasks_<ISO-8601 timestamp>.csv.

On first use the command prints an authorization URL and waits for the code
shown after granting access. The resulting token is cached for later runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			id, err := a.listID(listID)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Limit
			}
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}

			client, err := a.tasksClient(cmd)
			if err != nil {
				return err
			}

			res, err := exportTasks(cmd.Context(), a.logger, client, id, limit, outDir, time.Now())
			if err != nil {
				return err
			}

			recordExport(a.logger, id, res)
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "task list ID (overrides TASKLIST_ID)")
	cmd.Flags().Int64Var(&limit, "limit", 100, "maximum number of tasks to fetch (1-100)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default \"data\")")
	return cmd
}

// exportResult describes a written export.
type exportResult struct {
	Path string
	Rows int
	At   time.Time
}

// exportTasks runs fetch, CSV encoding and file write for one list.
func exportTasks(ctx context.Context, logger *slog.Logger, lister taskLister, listID string, limit int64, outDir string, now time.Time) (*exportResult, error) {
	logger = logging.WithOperation(logger, "export")

	tasks, err := lister.ListTasks(ctx, listID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	text, err := export.ToCSV(tasks)
	if err != nil {
		return nil, err
	}

	path := export.Filename(outDir, now)
	if err := export.WriteFile(logger, path, text); err != nil {
		return nil, err
	}

	logger.Info("tasks exported", logging.ListID(listID), logging.Count(len(tasks)), logging.Path(path))
	return &exportResult{Path: path, Rows: len(tasks), At: now}, nil
}

// recordExport remembers the export in the export index. Failures only warn.
func recordExport(logger *slog.Logger, listID string, res *exportResult) {
	idx, err := index.NewExportIndex()
	if err != nil {
		logger.Warn("could not open export index", logging.Err(err))
		return
	}
	idx.Set(listID, index.Record{Path: res.Path, Rows: res.Rows, ExportedAt: res.At})
	if err := idx.Save(); err != nil {
		logger.Warn("could not save export index", logging.Err(err))
	}
}
