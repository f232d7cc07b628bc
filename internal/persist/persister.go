package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"lifelog/internal/logstore"
)

const snapshotFileMode = 0o644

// Persister handles snapshot I/O for a single data file using a Codec.
// Writes are write-through relative to in-memory state: the store mutates
// first and remains authoritative whether or not the save lands.
type Persister struct {
	path  string
	codec Codec
}

// NewPersister creates a persister writing basename+codec extension inside dir.
func NewPersister(dir, basename string, codec Codec) *Persister {
	return &Persister{
		path:  filepath.Join(dir, basename+codec.Extension()),
		codec: codec,
	}
}

// Path returns the snapshot file path.
func (p *Persister) Path() string {
	return p.path
}

// Load reads and migrates the snapshot. A missing file, an empty file, and
// an unreadable file all heal to a usable snapshot; the Migration field
// records which step applied. Load never fails on malformed content, only
// on I/O-level read errors.
func (p *Persister) Load() (*Snapshot, error) {
	file, err := os.Open(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSnapshot(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err == nil && info.Size() == 0 {
		return NewSnapshot(), nil
	}

	var snapshot Snapshot

	err = p.codec.Decode(file, &snapshot)
	if err != nil {
		healed := NewSnapshot()
		healed.Migration = MigrationReset

		return healed, nil
	}

	if snapshot.Data == nil {
		snapshot.Data = logstore.DayMap{}
	}

	return &snapshot, nil
}

// Save writes the snapshot to disk via a temp file and rename, so a crashed
// write never truncates existing history.
func (p *Persister) Save(snapshot *Snapshot) error {
	dir := filepath.Dir(p.path)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	err = p.codec.Encode(tmp, snapshot)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("close temp snapshot: %w", err)
	}

	err = os.Chmod(tmp.Name(), snapshotFileMode)
	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("chmod snapshot: %w", err)
	}

	err = os.Rename(tmp.Name(), p.path)
	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}
