package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/harrisonrobin/taskdump/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSV(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "A", Status: "needsAction"},
		{ID: "2", Title: "C", Updated: "2024-01-01", Notes: "x"},
	}

	out, err := ToCSV(tasks)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.Equal(t, "id,title,updated,notes,status", lines[0])
	assert.Equal(t, "1,A,,,needsAction", lines[1])
	assert.Equal(t, "2,C,2024-01-01,x,", lines[2])
}

func TestToCSVEmpty(t *testing.T) {
	for _, tasks := range [][]model.Task{nil, {}} {
		out, err := ToCSV(tasks)
		require.NoError(t, err)
		assert.Equal(t, "id,title,updated,notes,status", strings.TrimSpace(out))
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Plain"},
		{ID: "2", Title: "Comma, inside", Notes: "line one\nline two", Status: "completed"},
		{ID: "3", Title: `Quote "here"`, Updated: "2024-05-06T07:08:09.000Z", Notes: ""},
	}

	out, err := ToCSV(tasks)
	require.NoError(t, err)

	back, err := FromCSV(out)
	require.NoError(t, err)
	assert.Equal(t, tasks, back)
}

func TestCSVRoundTripCRLF(t *testing.T) {
	out, err := ToCSV([]model.Task{{ID: "1", Notes: "a\r\nb"}})
	require.NoError(t, err)
	assert.Contains(t, out, "\"a\r\nb\"", "the export keeps the CRLF")

	back, err := FromCSV(out)
	require.NoError(t, err)
	require.Len(t, back, 1)
	// encoding/csv normalizes quoted CRLF to LF on read.
	assert.Equal(t, "a\nb", back[0].Notes)
}

func TestFromCSVEmpty(t *testing.T) {
	tasks, err := FromCSV("")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 789000000, time.FixedZone("CET", 3600))
	assert.Equal(t, filepath.Join("data", "tasks_2024-03-09T13:05:06.789Z.csv"), Filename("data", now))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.csv")

	require.NoError(t, WriteFile(logging.Discard(), path, "id\n1\n"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(b))
}

func TestWriteFileError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0644))

	path := filepath.Join(blocker, "tasks.csv")
	err := WriteFile(logging.Discard(), path, "id\n")
	require.Error(t, err)

	var writeErr *FileWriteError
	require.True(t, errors.As(err, &writeErr), "expected FileWriteError, got %T", err)
	assert.Equal(t, path, writeErr.Path)
}
