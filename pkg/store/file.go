package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage keeps one <name>.json file per blob inside Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStorage{Dir: dir}, nil
}

func (s *FileStorage) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *FileStorage) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", name, err)
	}
	return data, nil
}

func (s *FileStorage) Save(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.Dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	// rename makes the replacement atomic for readers
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	return nil
}

func (s *FileStorage) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob %q: %w", name, err)
	}
	return nil
}
