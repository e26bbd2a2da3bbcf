package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ledgerlab/bookledger/state"
)

// FileStore keeps the snapshot in a single JSON file. Saves go through
// a temporary file and rename so a crash mid-write cannot corrupt an
// existing snapshot.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads and decodes the snapshot file.
func (f *FileStore) Load(ctx context.Context) (state.State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state.State{}, ErrNoSnapshot
		}
		return state.State{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Save encodes the state and atomically replaces the snapshot file.
func (f *FileStore) Save(ctx context.Context, st state.State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
