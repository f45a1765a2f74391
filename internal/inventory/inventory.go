// Package inventory tracks seat occupancy per screening in memory and is the
// only place where the reserve/release critical sections live. Durable seat
// state lives in the seats table; the inventory is rehydrated from it at
// startup and kept in lockstep by the booking and scheduling layers.
package inventory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type seatState struct {
	id     int
	row    int
	column int
	heldBy uuid.UUID // uuid.Nil while free
}

// screeningSeats carries its own mutex so reservations on different screenings
// never contend with each other.
type screeningSeats struct {
	mu    sync.Mutex
	seats map[int]*seatState
}

type Inventory struct {
	mu         sync.RWMutex
	screenings map[int]*screeningSeats
}

func New() *Inventory {
	return &Inventory{
		screenings: make(map[int]*screeningSeats),
	}
}

// AddScreening registers the seat grid of a newly scheduled screening.
func (inv *Inventory) AddScreening(screeningID int, seats []domain.Seat) {
	ss := &screeningSeats{seats: make(map[int]*seatState, len(seats))}

	for _, seat := range seats {
		state := &seatState{id: seat.ID, row: seat.Row, column: seat.Column}
		if seat.OrderID != nil {
			// Rehydration path: the seat was already sold before restart.
			state.heldBy = uuid.New()
		}
		ss.seats[seat.ID] = state
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.screenings[screeningID] = ss
}

// RemoveScreening drops a retired screening's seats. Idempotent.
func (inv *Inventory) RemoveScreening(screeningID int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	delete(inv.screenings, screeningID)
}

func (inv *Inventory) screening(screeningID int) *screeningSeats {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	return inv.screenings[screeningID]
}

// Reserve atomically marks all requested seats as held by ref. Either every
// seat transitions from free to held, or none does. Preconditions are checked
// in a fixed order and the first failure wins:
//
//  1. the seat list is non-empty
//  2. every seat exists and belongs to the screening
//  3. the seats lie in one row and form a contiguous run of columns
//  4. none of the seats is currently held
//
// The whole check-then-mark sequence runs under the screening's lock, so a
// concurrent reserve or release on the same screening sees either all of this
// reservation's effects or none of them.
func (inv *Inventory) Reserve(screeningID int, seatIDs []int, ref uuid.UUID) error {
	if len(seatIDs) == 0 {
		return domain.ErrNoSeatsSelected
	}

	ss := inv.screening(screeningID)
	if ss == nil {
		return domain.ErrNoSuchSeat
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	states := make([]*seatState, 0, len(seatIDs))
	for _, id := range seatIDs {
		state, ok := ss.seats[id]
		if !ok {
			return domain.ErrNoSuchSeat
		}
		states = append(states, state)
	}

	sort.Slice(states, func(i, j int) bool { return states[i].column < states[j].column })

	for i := 1; i < len(states); i++ {
		if states[i].row != states[0].row || states[i].column != states[i-1].column+1 {
			return domain.ErrInvalidSeatLayout
		}
	}

	for _, state := range states {
		if state.heldBy != uuid.Nil {
			return domain.ErrSeatAlreadyReserved
		}
	}

	for _, state := range states {
		state.heldBy = ref
	}

	return nil
}

// Release marks the seats free again. Already-free or unknown seats are
// ignored, so releasing twice is harmless.
func (inv *Inventory) Release(screeningID int, seatIDs []int) {
	ss := inv.screening(screeningID)
	if ss == nil {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for _, id := range seatIDs {
		if state, ok := ss.seats[id]; ok {
			state.heldBy = uuid.Nil
		}
	}
}

// Seats returns a snapshot of the screening's seats sorted by row then column,
// with OrderID standing in for "held" (the concrete order id is only known to
// the durable store).
func (inv *Inventory) Seats(screeningID int) ([]domain.Seat, bool) {
	ss := inv.screening(screeningID)
	if ss == nil {
		return nil, false
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	seats := make([]domain.Seat, 0, len(ss.seats))
	for _, state := range ss.seats {
		seat := domain.Seat{
			ID:          state.id,
			ScreeningID: screeningID,
			Row:         state.row,
			Column:      state.column,
		}
		if state.heldBy != uuid.Nil {
			held := -1
			seat.OrderID = &held
		}
		seats = append(seats, seat)
	}

	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Column < seats[j].Column
	})

	return seats, true
}

// Grid builds the seat records for a fresh screening, one per row/column cell
// of the hall. The records carry no IDs until persisted.
func Grid(screeningID, rows, columns int) []domain.Seat {
	seats := make([]domain.Seat, 0, rows*columns)

	for row := 1; row <= rows; row++ {
		for col := 1; col <= columns; col++ {
			seats = append(seats, domain.Seat{
				ScreeningID: screeningID,
				Row:         row,
				Column:      col,
			})
		}
	}

	return seats
}
