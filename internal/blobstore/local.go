package blobstore

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/recipekeeper/internal/filex"
)

// LocalStore writes blobs into a directory, creating it on demand.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string { return s.dir }

// Put returns the file path of the written blob.
func (s *LocalStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := filex.EnsureDir(s.dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
