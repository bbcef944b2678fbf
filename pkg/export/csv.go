package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/harrisonrobin/taskdump/pkg/model"
)

// DefaultDir is the directory exports are written to.
const DefaultDir = "data"

// timestampLayout is ISO-8601 with milliseconds; times are converted to UTC first.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FileWriteError reports a failed export write.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// ToCSV renders tasks as CSV with a header row named after the task fields.
// An empty slice renders the header only.
func ToCSV(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	out, err := gocsv.MarshalString(&tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks as csv: %w", err)
	}
	return out, nil
}

// FromCSV parses text produced by ToCSV.
// A "\r\n" inside a quoted field is read back as "\n"; the written file keeps it.
func FromCSV(text string) ([]model.Task, error) {
	var tasks []model.Task
	if strings.TrimSpace(text) == "" {
		return tasks, nil
	}
	if err := gocsv.UnmarshalString(text, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode csv: %w", err)
	}
	return tasks, nil
}

// Filename returns dir/tasks_<timestamp>.csv for now.
func Filename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("tasks_%s.csv", now.UTC().Format(timestampLayout)))
}

// WriteFile writes text to path, creating the parent directory.
// Failures are logged and returned as *FileWriteError.
func WriteFile(logger *slog.Logger, path, text string) error {
	if err := writeFile(path, text); err != nil {
		logger.Error("could not write export", logging.Path(path), logging.Err(err))
		return &FileWriteError{Path: path, Err: err}
	}
	logger.Debug("export written", logging.Path(path), slog.Int("bytes", len(text)))
	return nil
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}
