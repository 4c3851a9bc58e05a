// Package catalog holds immutable satellite/coverage catalog snapshots.
// A computation always works against one Snapshot; ingesting a new
// catalog produces a fresh Snapshot that is swapped in atomically, so
// in-flight computations keep a consistent view until they finish.
package catalog

import (
	"sort"
	"sync"

	"github.com/signalsfoundry/satlink-planner/model"
)

// Snapshot is a frozen satellite catalog. It is never mutated after
// construction; build a new one and Swap it into the Store instead.
type Snapshot struct {
	satellites map[string]model.SatelliteDefinition
}

// NewSnapshot builds a snapshot from satellite definitions. Later
// entries with a duplicate ID replace earlier ones.
func NewSnapshot(defs []model.SatelliteDefinition) *Snapshot {
	sats := make(map[string]model.SatelliteDefinition, len(defs))
	for _, def := range defs {
		sats[def.ID] = def
	}
	return &Snapshot{satellites: sats}
}

// Satellite returns the definition for an ID.
func (s *Snapshot) Satellite(id string) (model.SatelliteDefinition, bool) {
	def, ok := s.satellites[id]
	return def, ok
}

// Size returns the number of catalog entries.
func (s *Snapshot) Size() int { return len(s.satellites) }

// IDs returns the catalog's satellite IDs in sorted order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.satellites))
	for id := range s.satellites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Store hands out the current Snapshot and swaps in replacements
// atomically. Readers that already hold a Snapshot are unaffected by a
// swap.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	subs    map[int]func(*Snapshot)
	nextSub int
}

// NewStore constructs a store holding an empty snapshot.
func NewStore() *Store {
	return &Store{
		current: NewSnapshot(nil),
		subs:    make(map[int]func(*Snapshot)),
	}
}

// Snapshot returns the current catalog snapshot.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Swap installs a new snapshot and notifies subscribers. A nil snapshot
// is replaced by an empty one.
func (st *Store) Swap(snap *Snapshot) {
	if snap == nil {
		snap = NewSnapshot(nil)
	}

	st.mu.Lock()
	st.current = snap
	subs := make([]func(*Snapshot), 0, len(st.subs))
	for _, sub := range st.subs {
		subs = append(subs, sub)
	}
	st.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(snap)
	}
}

// Subscribe registers a callback invoked after every swap. It returns
// an unsubscribe function; calling it more than once is harmless and
// never detaches another subscriber.
func (st *Store) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.subs == nil {
		st.subs = make(map[int]func(*Snapshot))
	}
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.subs, id)
	}
}
