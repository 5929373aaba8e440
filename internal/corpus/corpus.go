// Package corpus holds the process-wide chunk corpus and its derived
// vector index as a single atomically-swapped snapshot.
package corpus

import (
	"sync/atomic"
	"time"

	"bookqa/internal/document"
	"bookqa/internal/embed"
	"bookqa/internal/index"
)

// Snapshot is an immutable corpus: the ordered chunk sequence, the
// index built from it, and the embedder fitted on it. The three are
// built together off to the side and only then published, so a reader
// can never observe a new index against an old chunk sequence.
type Snapshot struct {
	Chunks   []document.Chunk
	Index    *index.Index
	Embedder embed.Embedder
	Sources  []string
	BuiltAt  time.Time
}

// Store publishes corpus snapshots. Load never blocks; Replace swaps
// the whole corpus in one pointer store.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store { return &Store{} }

// Load returns the live snapshot, or nil before the first ingest.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Replace publishes a fully-built snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}
