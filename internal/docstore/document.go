// Package docstore persists a whole collection as a single JSON array file.
//
// Every write rewrites the entire document, which costs O(n) in the size of
// the collection. That is acceptable for the small data sets this backend is
// meant for; the SQL repositories exist for anything larger.
//
// A Document serializes its own read-modify-write cycles with a mutex, so two
// goroutines appending through the same Document never lose an update. Two
// processes sharing one file are still last-write-wins.
package docstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/filex"
)

// Document is a JSON array of T stored at one path.
type Document[T any] struct {
	mu   sync.Mutex
	path string
}

// New returns a Document for path. Nothing is touched on disk until the
// first write.
func New[T any](path string) *Document[T] {
	return &Document[T]{path: path}
}

// Path returns the backing file path.
func (d *Document[T]) Path() string {
	return d.path
}

// Load returns the whole collection. A missing file is an empty collection;
// malformed content fails with common.ErrCorruptDocument.
func (d *Document[T]) Load() ([]T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// Update loads the collection, passes it to fn and persists whatever fn
// returns. If fn fails nothing is written and its error is returned as is.
func (d *Document[T]) Update(fn func(items []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	items, err := d.load()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return d.save(items)
}

func (d *Document[T]) load() ([]T, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptDocument, d.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (d *Document[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}

	if err := filex.WriteFileAtomic(d.path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}
