package syncer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateStore persists the source-name to checksum map between runs.
type StateStore interface {
	Load() map[string]string
	Save(state map[string]string) error
}

// FileStore keeps the sync state as a JSON file alongside the tool.
type FileStore struct {
	path string
}

// NewFileStore probes the state file path for writability up front - an
// unusable state store is the one startup condition worth aborting for.
func NewFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("state file %s is not writable (%v)", path, err)
	}

	f.Close()

	return &FileStore{path: path}, nil
}

// Load returns the persisted state. A missing or corrupt state file yields
// an empty map - the worst case is a redundant re-sync, never a failure.
func (s *FileStore) Load() map[string]string {
	state := map[string]string{}

	bytes, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}

	if err := json.Unmarshal(bytes, &state); err != nil {
		return map[string]string{}
	}

	return state
}

// Save overwrites the state file in full, via a sibling temp file and an
// atomic rename.
func (s *FileStore) Save(state map[string]string) error {
	bytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+"-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
