package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/taskdump/pkg/auth"
	"github.com/harrisonrobin/taskdump/pkg/config"
	"github.com/harrisonrobin/taskdump/pkg/export"
	"github.com/harrisonrobin/taskdump/pkg/index"
	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/harrisonrobin/taskdump/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/tasks/v1"
)

type fakeLister struct {
	tasks  []model.Task
	err    error
	listID string
	limit  int64
}

func (f *fakeLister) ListTasks(_ context.Context, listID string, limit int64) ([]model.Task, error) {
	f.listID, f.limit = listID, limit
	return f.tasks, f.err
}

func TestExportTasks(t *testing.T) {
	raw := []*tasks.Task{
		{Id: "1", Title: "A", Status: "needsAction"},
		{Id: "", Title: "B"},
		{Id: "2", Title: "C", Notes: "x", Updated: "2024-01-01"},
	}
	lister := &fakeLister{tasks: util.NormalizeTasks(raw)}
	outDir := filepath.Join(t.TempDir(), "data")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	res, err := exportTasks(context.Background(), logging.Discard(), lister, "list-1", 100, outDir, now)
	require.NoError(t, err)

	assert.Equal(t, "list-1", lister.listID)
	assert.EqualValues(t, 100, lister.limit)
	assert.Equal(t, filepath.Join(outDir, "tasks_2024-06-01T12:00:00.000Z.csv"), res.Path)
	assert.Equal(t, 2, res.Rows)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	assert.Equal(t, []string{
		"id,title,updated,notes,status",
		"1,A,,,needsAction",
		"2,C,2024-01-01,x,",
	}, lines)

	back, err := export.FromCSV(string(b))
	require.NoError(t, err)
	assert.Equal(t, lister.tasks, back)
}

func TestExportTasksEmptyList(t *testing.T) {
	outDir := t.TempDir()
	res, err := exportTasks(context.Background(), logging.Discard(), &fakeLister{tasks: []model.Task{}}, "list-1", 100, outDir, time.Now())
	require.NoError(t, err)
	assert.Zero(t, res.Rows)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "id,title,updated,notes,status", strings.TrimSpace(string(b)))
}

func TestExportTasksListError(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "data")
	listErr := errors.New("unauthorized")

	_, err := exportTasks(context.Background(), logging.Discard(), &fakeLister{err: listErr}, "list-1", 100, outDir, time.Now())
	assert.ErrorIs(t, err, listErr)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when listing fails")
}

func TestExportTasksWriteError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := exportTasks(context.Background(), logging.Discard(), &fakeLister{tasks: []model.Task{{ID: "1"}}}, "list-1", 100, blocker, time.Now())
	var writeErr *export.FileWriteError
	assert.True(t, errors.As(err, &writeErr), "expected FileWriteError, got %T", err)
}

func TestRecordExport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	recordExport(logging.Discard(), "list-1", &exportResult{Path: "data/x.csv", Rows: 3, At: at})

	idx, err := index.NewExportIndex()
	require.NoError(t, err)
	r, ok := idx.Get("list-1")
	require.True(t, ok)
	assert.Equal(t, 3, r.Rows)

	var buf bytes.Buffer
	printHistory(&buf, idx)
	assert.Equal(t, "list-1\t2024-06-01T12:00:00Z\t3 rows\tdata/x.csv\n", buf.String())
}

func TestAppListID(t *testing.T) {
	a := &app{cfg: &config.Config{}}
	_, err := a.listID("")
	var cfgErr *auth.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), config.EnvTaskListID)

	a.cfg.TaskListID = "from-config"
	id, err := a.listID("")
	require.NoError(t, err)
	assert.Equal(t, "from-config", id)

	id, err = a.listID("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", id)
}
