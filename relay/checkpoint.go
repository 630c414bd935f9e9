// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
)

const checkpointPerms = 0o644

// Checkpoint is the progress of a relay process.
type Checkpoint struct {
	// NextEvent is the first ledger event that has not been handled.
	NextEvent uint64 `toml:"next_event"`
	// LastCheckedBlock is the last counterpart block scanned for transfers.
	LastCheckedBlock uint64 `toml:"last_checked_block"`
}

// CheckpointFile persists a Checkpoint as TOML. Writes replace the file
// atomically and are skipped when nothing changed.
type CheckpointFile struct {
	path string

	lock    sync.Mutex
	current Checkpoint
}

// OpenCheckpoint reads the checkpoint at [path]. A missing file is a fresh
// relay starting from the zero checkpoint.
func OpenCheckpoint(path string) (*CheckpointFile, error) {
	f := &CheckpointFile{path: path}
	_, err := toml.DecodeFile(path, &f.current)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read checkpoint %q: %w", path, err)
	}
	return f, nil
}

func (f *CheckpointFile) Path() string {
	return f.path
}

func (f *CheckpointFile) Read() Checkpoint {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.current
}

func (f *CheckpointFile) Write(c Checkpoint) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if c == f.current {
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	if err := renameio.WriteFile(f.path, buf.Bytes(), checkpointPerms); err != nil {
		return fmt.Errorf("failed to write checkpoint %q: %w", f.path, err)
	}
	f.current = c
	return nil
}
