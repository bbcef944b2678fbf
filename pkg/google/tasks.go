package google

import (
	"context"
	"log/slog"

	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/harrisonrobin/taskdump/pkg/util"
	"google.golang.org/api/tasks/v1"
)

const (
	// DefaultLimit is the number of tasks requested when no limit is given.
	// It is also the largest page the Tasks API serves.
	DefaultLimit int64 = 100

	// DefaultListLimit is the number of task lists requested by ListTaskLists.
	DefaultListLimit int64 = 10
)

// TasksClient is a read-only Google Tasks API client.
type TasksClient struct {
	srv    *tasks.Service
	logger *slog.Logger
}

// NewTasksClient wraps an existing Tasks service.
func NewTasksClient(srv *tasks.Service, logger *slog.Logger) *TasksClient {
	return &TasksClient{srv: srv, logger: logger}
}

// ListTasks fetches the first page of tasks in a list, at most limit items,
// and normalizes them. Later pages are never requested.
func (c *TasksClient) ListTasks(ctx context.Context, listID string, limit int64) ([]model.Task, error) {
	res, err := c.srv.Tasks.List(listID).
		MaxResults(clampLimit(limit, DefaultLimit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.fail("tasks.list", listID, err)
	}

	items := util.NormalizeTasks(res.Items)
	c.logger.Debug("fetched tasks",
		logging.ListID(listID),
		logging.Count(len(items)),
		slog.Int("dropped", len(res.Items)-len(items)),
		slog.Bool("more", res.NextPageToken != ""))
	return items, nil
}

// GetTask fetches a single task. It returns nil when the API answers with a record without an ID.
func (c *TasksClient) GetTask(ctx context.Context, listID, taskID string) (*model.Task, error) {
	raw, err := c.srv.Tasks.Get(listID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, c.fail("tasks.get", listID, err)
	}
	task, ok := util.NormalizeTask(raw)
	if !ok {
		return nil, nil
	}
	return &task, nil
}

// ListTaskLists fetches the user's task lists, at most limit items.
func (c *TasksClient) ListTaskLists(ctx context.Context, limit int64) ([]model.TaskList, error) {
	res, err := c.srv.Tasklists.List().
		MaxResults(clampLimit(limit, DefaultListLimit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.fail("tasklists.list", "", err)
	}

	lists := make([]model.TaskList, 0, len(res.Items))
	for _, tl := range res.Items {
		lists = append(lists, util.ConvertTaskList(tl))
	}
	return lists, nil
}

func (c *TasksClient) fail(op, listID string, err error) error {
	remoteErr := newRemoteError(op, err)
	c.logger.Error("the API returned an error",
		logging.Operation(op),
		logging.ListID(listID),
		logging.Status(remoteErr.StatusCode),
		logging.Err(err))
	return remoteErr
}

func clampLimit(limit, def int64) int64 {
	if limit <= 0 {
		return def
	}
	if limit > DefaultLimit {
		return DefaultLimit
	}
	return limit
}
