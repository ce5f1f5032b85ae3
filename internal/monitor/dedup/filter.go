// Package dedup suppresses re-emission of events already published.
package dedup

import "sync"

// Filter remembers emitted event ids together with their block until the
// checkpoint moves past that block.
type Filter struct {
	mu   sync.Mutex
	seen map[string]uint64
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{seen: make(map[string]uint64)}
}

// ShouldEmit reports whether id has not been emitted yet.
func (f *Filter) ShouldEmit(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[id]
	return !ok
}

// MarkEmitted records id as emitted in block.
func (f *Filter) MarkEmitted(id string, block uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[id] = block
}

// Claim marks id and reports true if it was not emitted before.
func (f *Filter) Claim(id string, block uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[id]; ok {
		return false
	}
	f.seen[id] = block
	return true
}

// Prune forgets every record at or below lastBlock and returns how many were removed.
func (f *Filter) Prune(lastBlock uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := 0
	for id, block := range f.seen {
		if block <= lastBlock {
			delete(f.seen, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of retained records. It backs the dedup retained gauge.
func (f *Filter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
