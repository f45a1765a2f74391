// Package schedule places screenings onto hall/time slots without overlap and
// retires screenings whose end time has passed.
package schedule

import (
	"sync"
	"time"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type entry struct {
	screeningID int // 0 while the slot is provisionally held
	start       time.Time
	end         time.Time
}

// hallIntervals carries its own mutex so placements in different halls never
// contend with each other.
type hallIntervals struct {
	mu      sync.Mutex
	entries map[int64]entry
}

// Index is the per-hall ordered view of live screening intervals. Placement is
// a two-step handshake: Place checks for conflicts and claims the slot in one
// critical section, the caller persists the screening, and then either commits
// the hold with the durable id or releases it. The hold counts as a conflict
// for concurrent placements in between, so no lock is ever held across a
// store call.
type Index struct {
	mu      sync.Mutex
	halls   map[int]*hallIntervals
	nextKey int64
}

func NewIndex() *Index {
	return &Index{
		halls: make(map[int]*hallIntervals),
	}
}

func (idx *Index) hall(cinemaID int) *hallIntervals {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	h, ok := idx.halls[cinemaID]
	if !ok {
		h = &hallIntervals{entries: make(map[int64]entry)}
		idx.halls[cinemaID] = h
	}

	return h
}

func (idx *Index) key() int64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.nextKey++
	return idx.nextKey
}

// Hold is a claimed hall/time slot awaiting its durable screening id.
type Hold struct {
	hall *hallIntervals
	key  int64
}

// Place claims [start, end) in the hall. It fails with ErrUnavailableTime if
// start is not strictly in the future, or if any other live screening in the
// hall overlaps the interval. Two intervals overlap iff
// existing.start < end && start < existing.end; the test is symmetric, so a
// new screening swallowing an existing one is rejected the same as one that
// clips its tail. excludeID skips the named screening, used when moving it.
func (idx *Index) Place(cinemaID int, start, end time.Time, now time.Time, excludeID int) (*Hold, error) {
	if !start.After(now) {
		return nil, domain.ErrUnavailableTime
	}

	h := idx.hall(cinemaID)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if excludeID != 0 && e.screeningID == excludeID {
			continue
		}
		if e.start.Before(end) && start.Before(e.end) {
			return nil, domain.ErrUnavailableTime
		}
	}

	key := idx.key()
	h.entries[key] = entry{start: start, end: end}

	return &Hold{hall: h, key: key}, nil
}

// Commit binds the held slot to its persisted screening id. Any previous entry
// for the same screening (the old interval of an updated screening) is dropped
// in the same critical section.
func (hold *Hold) Commit(screeningID int) {
	hold.hall.mu.Lock()
	defer hold.hall.mu.Unlock()

	for key, e := range hold.hall.entries {
		if key != hold.key && e.screeningID == screeningID {
			delete(hold.hall.entries, key)
		}
	}

	e := hold.hall.entries[hold.key]
	e.screeningID = screeningID
	hold.hall.entries[hold.key] = e
}

// Release abandons the hold after a failed persist.
func (hold *Hold) Release() {
	hold.hall.mu.Lock()
	defer hold.hall.mu.Unlock()

	delete(hold.hall.entries, hold.key)
}

// Restore loads a durable screening into the index without conflict checks,
// used when rehydrating at startup.
func (idx *Index) Restore(cinemaID, screeningID int, start, end time.Time) {
	h := idx.hall(cinemaID)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[idx.key()] = entry{screeningID: screeningID, start: start, end: end}
}

// Remove drops the screening's interval from the hall. Idempotent.
func (idx *Index) Remove(cinemaID, screeningID int) {
	h := idx.hall(cinemaID)

	h.mu.Lock()
	defer h.mu.Unlock()

	for key, e := range h.entries {
		if e.screeningID == screeningID {
			delete(h.entries, key)
		}
	}
}
