// Package dedupe tracks identifiers that have already been seen, used to
// reject duplicate job and candidate ids while loading a catalog.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen ids.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool
}

// inMemoryDeduper keeps every id for the lifetime of one load, so a repeat
// is caught no matter how far apart the two rows are.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty deduper. It is safe for concurrent use.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

// FirstDuplicate returns the first id in ids that repeats an earlier one.
func FirstDuplicate(ctx context.Context, ids []string) (string, bool) {
	d := NewInMemoryDeduper()
	for _, id := range ids {
		if d.SeenAndRecord(ctx, id) {
			return id, true
		}
	}
	return "", false
}
