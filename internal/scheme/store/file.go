package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/spf13/afero"
)

// FileStore writes the list as a JSON document on an afero filesystem.
// Saves go to a sibling temp file first and are renamed into place.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a file-backed store. A nil fs means the OS filesystem.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = "data/schemes.json"
	}
	return &FileStore{fs: fs, path: path}
}

func (f *FileStore) Driver() string { return "file" }

func (f *FileStore) Load(ctx context.Context) ([]scheme.Scheme, bool, error) {
	b, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", f.path, err)
	}
	list, err := decode(b)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (f *FileStore) Save(ctx context.Context, list []scheme.Scheme) error {
	b, err := encode(list)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dirs: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
