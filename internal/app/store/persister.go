package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Persister is the persistence port for the game state. Load returns nil (and no
// error) when no snapshot exists yet; Save overwrites the whole snapshot.
type Persister interface {
	Load() (*Snapshot, error)
	Save(snap *Snapshot) error
}

// FilePersister persists the snapshot as one pretty-printed JSON document.
// Writes go to a temp file first and are moved into place with a rename, so a
// crash mid-write never leaves a truncated snapshot behind.
type FilePersister struct {
	path string
}

// NewFilePersister returns a FilePersister writing to the given file path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load reads and decodes the snapshot file.
func (p *FilePersister) Load() (*Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", p.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", p.path, err)
	}

	return &snap, nil
}

// Save encodes the snapshot and atomically replaces the snapshot file.
func (p *FilePersister) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir %s: %w", dir, err)
		}
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", p.path, err)
	}

	return nil
}
