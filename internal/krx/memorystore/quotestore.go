package memorystore

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownInstrument is returned by Write for names outside the
// configured instrument set.
var ErrUnknownInstrument = errors.New("unknown instrument")

// QuoteStore holds the latest snapshot and the recent price history for a
// fixed set of instruments. One background fetcher writes; any number of
// presentation consumers read. Readers always get copies, never references
// into store state.
type QuoteStore struct {
	// The map itself is fixed at construction and only read afterwards,
	// so lookups need no lock. Each instrument carries its own mutex.
	quotes map[string]*instrumentState
}

// instrumentState pairs a snapshot with its price history under one mutex,
// so chart consumers always observe the two in a consistent state.
type instrumentState struct {
	mu      sync.Mutex
	snap    Snapshot
	history *historyBuffer
}

// NewQuoteStore creates a store with every named instrument in the loading
// state and an empty history of the given capacity.
func NewQuoteStore(names []string, historyCap int) *QuoteStore {
	quotes := make(map[string]*instrumentState, len(names))
	for _, name := range names {
		quotes[name] = &instrumentState{
			snap:    Snapshot{Status: StatusLoading},
			history: newHistoryBuffer(historyCap),
		}
	}
	return &QuoteStore{quotes: quotes}
}

// Write replaces the instrument's snapshot. When the snapshot carries a
// positive price, the same critical section appends it to the history, so
// no reader can see the new snapshot without the matching history point.
func (s *QuoteStore) Write(name string, snap Snapshot) error {
	st, ok := s.quotes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.snap = snap
	if snap.HasPrice && snap.Price > 0 {
		at := snap.UpdatedAt
		if at.IsZero() {
			at = time.Now()
		}
		st.history.Append(HistoryPoint{At: at, Price: snap.Price})
	}
	return nil
}

// ReadOne returns a copy of the instrument's current snapshot.
// ok is false for names outside the configured set.
func (s *QuoteStore) ReadOne(name string) (Snapshot, bool) {
	st, ok := s.quotes[name]
	if !ok {
		return Snapshot{}, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snap, true
}

// ReadAll returns a copy of every instrument's current snapshot. Each
// instrument is copied under its own lock; a mix of poll cycles across
// instruments is expected.
func (s *QuoteStore) ReadAll() map[string]Snapshot {
	result := make(map[string]Snapshot, len(s.quotes))
	for name, st := range s.quotes {
		st.mu.Lock()
		result[name] = st.snap
		st.mu.Unlock()
	}
	return result
}

// ReadHistory returns the instrument's buffered price points, oldest
// first. The returned slice is owned by the caller.
func (s *QuoteStore) ReadHistory(name string) []HistoryPoint {
	st, ok := s.quotes[name]
	if !ok {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.history.Snapshot()
}
