package util

import (
	"time"

	"github.com/harrisonrobin/taskdump/pkg/model"
	"google.golang.org/api/tasks/v1"
)

// NormalizeTask maps a Google Tasks item to a model.Task.
// It reports false when the item has no ID; such items are never exported.
func NormalizeTask(raw *tasks.Task) (model.Task, bool) {
	if raw == nil || raw.Id == "" {
		return model.Task{}, false
	}
	return model.Task{
		ID:      raw.Id,
		Title:   raw.Title,
		Updated: raw.Updated,
		Notes:   raw.Notes, // empty when the API omits it
		Status:  raw.Status,
	}, true
}

// NormalizeTasks normalizes every item, keeping API order and dropping items without an ID.
func NormalizeTasks(raw []*tasks.Task) []model.Task {
	out := make([]model.Task, 0, len(raw))
	for _, t := range raw {
		if task, ok := NormalizeTask(t); ok {
			out = append(out, task)
		}
	}
	return out
}

// ConvertTaskList converts a Google Tasks list to a model.TaskList.
func ConvertTaskList(tl *tasks.TaskList) model.TaskList {
	if tl == nil {
		return model.TaskList{}
	}
	result := model.TaskList{
		ID:    tl.Id,
		Title: tl.Title,
	}
	if tl.Updated != "" {
		if t, err := time.Parse(time.RFC3339, tl.Updated); err == nil {
			result.Updated = t
		}
	}
	return result
}
