package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/atomicfile"
	"github.com/martian56/bloc/pkg/object"
)

// IndexEntry records the staged state of a single file.
type IndexEntry struct {
	Hash  object.Hash `json:"hash"`
	Mode  string      `json:"mode"`
	Size  int64       `json:"size"`
	MTime time.Time   `json:"mtime"`
}

// Index is the staging area: pending path -> content mappings that form the
// next commit's tree descriptor. Paths are working-root relative and use
// forward slashes.
type Index struct {
	Entries map[string]*IndexEntry `json:"entries"`

	now func() time.Time
}

// NewIndex returns an empty index stamping entries with now.
func NewIndex(now func() time.Time) *Index {
	if now == nil {
		now = time.Now
	}
	return &Index{Entries: make(map[string]*IndexEntry), now: now}
}

// Add inserts or overwrites the entry for path, stamping the current time.
func (ix *Index) Add(path string, h object.Hash, size int64) {
	ix.Entries[path] = &IndexEntry{
		Hash:  h,
		Mode:  object.ModeFile,
		Size:  size,
		MTime: ix.now().UTC(),
	}
}

// Remove drops path from the index and reports whether it was staged.
func (ix *Index) Remove(path string) bool {
	if _, ok := ix.Entries[path]; !ok {
		return false
	}
	delete(ix.Entries, path)
	return true
}

// Clear empties the index.
func (ix *Index) Clear() {
	ix.Entries = make(map[string]*IndexEntry)
}

// IsStaged reports whether path has an entry.
func (ix *Index) IsStaged(path string) bool {
	_, ok := ix.Entries[path]
	return ok
}

// Len returns the number of staged entries.
func (ix *Index) Len() int {
	return len(ix.Entries)
}

// Paths returns the staged paths sorted.
func (ix *Index) Paths() []string {
	paths := make([]string, 0, len(ix.Entries))
	for p := range ix.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TreeEntries returns the path:hash pairs of every staged entry, sorted by
// path.
func (ix *Index) TreeEntries() []object.TreeEntry {
	paths := ix.Paths()
	entries := make([]object.TreeEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, object.TreeEntry{Path: p, Hash: ix.Entries[p].Hash})
	}
	return entries
}

// ReadIndex loads <meta>/index. If the file does not exist, an empty index
// is returned (no error).
func (r *Repo) ReadIndex() (*Index, error) {
	ix := NewIndex(r.now)
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ix, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	if err := json.Unmarshal(data, ix); err != nil {
		return nil, fmt.Errorf("read index: %w: %v", ErrMalformed, err)
	}
	if ix.Entries == nil {
		ix.Entries = make(map[string]*IndexEntry)
	}
	for p, e := range ix.Entries {
		if e == nil || !e.Hash.Valid() {
			return nil, fmt.Errorf("read index: %w: bad entry for %q", ErrMalformed, p)
		}
	}
	return ix, nil
}

// WriteIndex atomically writes ix to <meta>/index.
func (r *Repo) WriteIndex(ix *Index) error {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("write index: marshal: %w", err)
	}
	if err := atomicfile.WriteFile(r.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// SaveIndex persists the loaded index.
func (r *Repo) SaveIndex() error {
	if err := r.WriteIndex(r.Index); err != nil {
		return err
	}
	r.logger.Debug("saved index", zap.Int("entries", r.Index.Len()))
	return nil
}
