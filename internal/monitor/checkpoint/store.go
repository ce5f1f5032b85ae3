// Package checkpoint keeps the in-memory watching progress of a pool.
package checkpoint

import (
	"sync"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// Store owns the current checkpoint. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	cp model.Checkpoint
}

// NewStore returns a store holding an empty checkpoint.
func NewStore() *Store {
	return &Store{cp: model.Checkpoint{Blocks: map[uint64]bool{}}}
}

// Current returns a snapshot of the checkpoint.
func (s *Store) Current() model.Checkpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cp.Clone()
}

// Restore replaces the checkpoint with the decoded blob. The store is left
// untouched when the blob is invalid.
func (s *Store) Restore(blob []byte) (model.Checkpoint, error) {
	cp, err := model.DecodeCheckpoint(blob)
	if err != nil {
		return model.Checkpoint{}, err
	}
	s.Set(cp)
	return cp.Clone(), nil
}

// Set replaces the checkpoint with a copy of cp.
func (s *Store) Set(cp model.Checkpoint) {
	cp = cp.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cp = cp
	s.pruneLocked()
}

// Advance records progress: LastBlock moves to max(LastBlock, newBlock), LastTs is
// replaced when newTs is set, touched blocks are marked and everything at or below
// LastBlock is pruned. It returns the resulting snapshot.
func (s *Store) Advance(newBlock, newTs uint64, touched []uint64) model.Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newBlock > s.cp.LastBlock {
		s.cp.LastBlock = newBlock
	}
	if newTs > 0 {
		s.cp.LastTs = newTs
	}
	for _, b := range touched {
		s.cp.Blocks[b] = true
	}
	s.pruneLocked()

	return s.cp.Clone()
}

// IsProcessed reports whether block is at or below LastBlock or explicitly marked.
func (s *Store) IsProcessed(block uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return block <= s.cp.LastBlock || s.cp.Blocks[block]
}

func (s *Store) pruneLocked() {
	if s.cp.Blocks == nil {
		s.cp.Blocks = map[uint64]bool{}
	}
	for b := range s.cp.Blocks {
		if b <= s.cp.LastBlock {
			delete(s.cp.Blocks, b)
		}
	}
}
