package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/poolmonitor-backend/pkg/safe"
)

// Checkpoint is the durable marker of watching progress.
// Blocks holds the processed blocks above LastBlock that have not been pruned yet.
type Checkpoint struct {
	LastBlock uint64          `json:"lastBlock"`
	LastTs    uint64          `json:"lastTs"`
	Blocks    map[uint64]bool `json:"blocks"`
}

// Clone returns a deep copy.
func (c Checkpoint) Clone() Checkpoint {
	blocks := make(map[uint64]bool, len(c.Blocks))
	for b, ok := range c.Blocks {
		blocks[b] = ok
	}
	return Checkpoint{LastBlock: c.LastBlock, LastTs: c.LastTs, Blocks: blocks}
}

// SortedBlocks returns the marked blocks in ascending order.
func (c Checkpoint) SortedBlocks() []uint64 {
	out := make([]uint64, 0, len(c.Blocks))
	for b, ok := range c.Blocks {
		if ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Encode serialises the checkpoint into the persisted blob layout.
func (c Checkpoint) Encode() ([]byte, error) {
	if c.Blocks == nil {
		c.Blocks = map[uint64]bool{}
	}
	return json.Marshal(c)
}

type checkpointBlob struct {
	LastBlock *json.Number    `json:"lastBlock"`
	LastTs    *json.Number    `json:"lastTs"`
	Blocks    map[string]bool `json:"blocks"`
}

// DecodeCheckpoint parses a persisted blob. The blob must carry lastBlock; legacy
// blocksTx/blocksOp keys are ignored and a missing blocks map yields an empty set.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	var blob checkpointBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return Checkpoint{}, fmt.Errorf("%w: %v", ErrInvalidCheckpoint, err)
	}
	if blob.LastBlock == nil {
		return Checkpoint{}, fmt.Errorf("%w: lastBlock is missing", ErrInvalidCheckpoint)
	}

	lastBlock, err := parseUint(*blob.LastBlock)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("%w: lastBlock: %v", ErrInvalidCheckpoint, err)
	}
	var lastTs uint64
	if blob.LastTs != nil {
		if lastTs, err = parseUint(*blob.LastTs); err != nil {
			return Checkpoint{}, fmt.Errorf("%w: lastTs: %v", ErrInvalidCheckpoint, err)
		}
	}

	blocks := make(map[uint64]bool, len(blob.Blocks))
	for key, ok := range blob.Blocks {
		if !ok {
			continue
		}
		n, err := parseUint(json.Number(key))
		if err != nil {
			return Checkpoint{}, fmt.Errorf("%w: block %q: %v", ErrInvalidCheckpoint, key, err)
		}
		blocks[n] = true
	}

	return Checkpoint{LastBlock: lastBlock, LastTs: lastTs, Blocks: blocks}, nil
}

func parseUint(n json.Number) (uint64, error) {
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, err
		}
		v = int64(f)
	}
	return safe.Uint64(v)
}
