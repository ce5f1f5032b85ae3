// Package statefile keeps the pool ID and checkpoint of the monitor in a JSON file.
package statefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

const DefaultName = "poolMonitorState.json"

// DefaultPath is the state file location used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultName)
}

// State is the persisted monitor state. Checkpoint is nil until the first cycle completes.
type State struct {
	PoolID     string
	Checkpoint *model.Checkpoint
}

type fileState struct {
	PoolID     string          `json:"poolId,omitempty"`
	Checkpoint json.RawMessage `json:"checkpoint,omitempty"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing file yields an empty state.
func (s *Store) Load(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	var raw fileState
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("parse state file %s: %w", s.path, err)
	}

	state := State{PoolID: raw.PoolID}
	if len(raw.Checkpoint) > 0 && string(raw.Checkpoint) != "null" {
		cp, err := model.DecodeCheckpoint(raw.Checkpoint)
		if err != nil {
			return State{}, fmt.Errorf("state file %s: %w", s.path, err)
		}
		state.Checkpoint = &cp
	}
	return state, nil
}

// Save replaces the state file atomically.
func (s *Store) Save(ctx context.Context, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := fileState{PoolID: state.PoolID}
	if state.Checkpoint != nil {
		blob, err := state.Checkpoint.Encode()
		if err != nil {
			return fmt.Errorf("encode checkpoint: %w", err)
		}
		raw.Checkpoint = blob
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
