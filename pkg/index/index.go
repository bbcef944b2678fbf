package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrisonrobin/taskdump/pkg/config"
)

const exportsFile = "exports.json"

// Record describes one export of a task list.
type Record struct {
	Path       string    `json:"path"`
	Rows       int       `json:"rows"`
	ExportedAt time.Time `json:"exported_at"`
}

// ExportIndex remembers the latest export per task list.
type ExportIndex struct {
	Records map[string]Record `json:"records"`
	Path    string            `json:"-"`
	mu      sync.RWMutex
	dirty   bool
}

// NewExportIndex opens exports.json in taskdump's config directory.
func NewExportIndex() (*ExportIndex, error) {
	dir, err := config.GetXdgHome()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, exportsFile))
}

// Open loads the index stored at path. A missing file yields an empty index.
func Open(path string) (*ExportIndex, error) {
	idx := &ExportIndex{
		Records: make(map[string]Record),
		Path:    path,
	}

	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *ExportIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err := json.NewDecoder(f).Decode(&idx.Records); err != nil {
		return err
	}
	if idx.Records == nil {
		idx.Records = make(map[string]Record)
	}
	return nil
}

// Save writes the index if it changed since the last load or save.
func (idx *ExportIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(idx.Records); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *ExportIndex) Get(listID string) (Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	r, ok := idx.Records[listID]
	return r, ok
}

func (idx *ExportIndex) Set(listID string, r Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if old, ok := idx.Records[listID]; !ok || old.Path != r.Path || old.Rows != r.Rows || !old.ExportedAt.Equal(r.ExportedAt) {
		idx.Records[listID] = r
		idx.dirty = true
	}
}

func (idx *ExportIndex) Remove(listID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Records[listID]; exists {
		delete(idx.Records, listID)
		idx.dirty = true
	}
}

// ListIDs returns the indexed list IDs in no particular order.
func (idx *ExportIndex) ListIDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids := make([]string, 0, len(idx.Records))
	for id := range idx.Records {
		ids = append(ids, id)
	}
	return ids
}
