package inventory

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

// testGrid registers a screening with the given hall size and returns its
// seats with ids assigned the way the database would (1..rows*columns in
// row-major order).
func testGrid(t *testing.T, inv *Inventory, screeningID, rows, columns int) []domain.Seat {
	t.Helper()

	seats := Grid(screeningID, rows, columns)
	for i := range seats {
		seats[i].ID = i + 1
	}
	inv.AddScreening(screeningID, seats)

	return seats
}

func seatID(seats []domain.Seat, row, column int) int {
	for _, s := range seats {
		if s.Row == row && s.Column == column {
			return s.ID
		}
	}
	return 0
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name    string
		seats   func([]domain.Seat) []int
		wantErr error
	}{
		{
			name:  "single seat",
			seats: func(s []domain.Seat) []int { return []int{seatID(s, 1, 1)} },
		},
		{
			name: "contiguous run in one row",
			seats: func(s []domain.Seat) []int {
				return []int{seatID(s, 2, 3), seatID(s, 2, 4), seatID(s, 2, 5)}
			},
		},
		{
			name: "contiguous run given out of order",
			seats: func(s []domain.Seat) []int {
				return []int{seatID(s, 2, 5), seatID(s, 2, 3), seatID(s, 2, 4)}
			},
		},
		{
			name:    "empty selection",
			seats:   func([]domain.Seat) []int { return nil },
			wantErr: domain.ErrNoSeatsSelected,
		},
		{
			name:    "unknown seat id",
			seats:   func([]domain.Seat) []int { return []int{9999} },
			wantErr: domain.ErrNoSuchSeat,
		},
		{
			name: "gap in the run",
			seats: func(s []domain.Seat) []int {
				return []int{seatID(s, 2, 3), seatID(s, 2, 4), seatID(s, 2, 6)}
			},
			wantErr: domain.ErrInvalidSeatLayout,
		},
		{
			name: "seats in different rows",
			seats: func(s []domain.Seat) []int {
				return []int{seatID(s, 1, 1), seatID(s, 2, 1)}
			},
			wantErr: domain.ErrInvalidSeatLayout,
		},
		{
			name: "duplicate seat id",
			seats: func(s []domain.Seat) []int {
				return []int{seatID(s, 1, 1), seatID(s, 1, 1)}
			},
			wantErr: domain.ErrInvalidSeatLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := New()
			seats := testGrid(t, inv, 1, 5, 10)

			err := inv.Reserve(1, tt.seats(seats), uuid.New())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReserveUnknownScreening(t *testing.T) {
	inv := New()

	err := inv.Reserve(42, []int{1}, uuid.New())

	require.ErrorIs(t, err, domain.ErrNoSuchSeat)
}

func TestReserveMissingSeatWinsOverTakenSeat(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 5, 10)

	taken := seatID(seats, 1, 1)
	require.NoError(t, inv.Reserve(1, []int{taken}, uuid.New()))

	err := inv.Reserve(1, []int{taken, 9999}, uuid.New())

	require.ErrorIs(t, err, domain.ErrNoSuchSeat)
}

func TestReserveAlreadyReserved(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 5, 10)

	first := []int{seatID(seats, 3, 4), seatID(seats, 3, 5)}
	require.NoError(t, inv.Reserve(1, first, uuid.New()))

	err := inv.Reserve(1, first, uuid.New())

	require.ErrorIs(t, err, domain.ErrSeatAlreadyReserved)
}

func TestReserveFailureLeavesNothingHeld(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 5, 10)

	taken := seatID(seats, 3, 4)
	require.NoError(t, inv.Reserve(1, []int{taken}, uuid.New()))

	// Overlaps one held seat; the free neighbours must stay free.
	err := inv.Reserve(1, []int{seatID(seats, 3, 3), taken, seatID(seats, 3, 5)}, uuid.New())
	require.ErrorIs(t, err, domain.ErrSeatAlreadyReserved)

	err = inv.Reserve(1, []int{seatID(seats, 3, 3)}, uuid.New())
	assert.NoError(t, err)

	err = inv.Reserve(1, []int{seatID(seats, 3, 5)}, uuid.New())
	assert.NoError(t, err)
}

func TestReserveSameSeatsOnDifferentScreenings(t *testing.T) {
	inv := New()
	first := testGrid(t, inv, 1, 5, 10)
	second := testGrid(t, inv, 2, 5, 10)

	require.NoError(t, inv.Reserve(1, []int{seatID(first, 1, 1)}, uuid.New()))

	err := inv.Reserve(2, []int{seatID(second, 1, 1)}, uuid.New())

	require.NoError(t, err)
}

func TestReserveConcurrentContention(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 5, 10)

	ids := []int{seatID(seats, 2, 3), seatID(seats, 2, 4)}

	const competitors = 50

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < competitors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if inv.Reserve(1, ids, uuid.New()) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
}

func TestRelease(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 5, 10)

	ids := []int{seatID(seats, 2, 3), seatID(seats, 2, 4)}
	require.NoError(t, inv.Reserve(1, ids, uuid.New()))

	inv.Release(1, ids)
	// Releasing twice, or releasing unknown seats, must be harmless.
	inv.Release(1, ids)
	inv.Release(1, []int{9999})
	inv.Release(42, ids)

	err := inv.Reserve(1, ids, uuid.New())
	require.NoError(t, err)
}

func TestSeatsSnapshot(t *testing.T) {
	inv := New()
	seats := testGrid(t, inv, 1, 2, 2)

	require.NoError(t, inv.Reserve(1, []int{seatID(seats, 1, 2)}, uuid.New()))

	got, ok := inv.Seats(1)
	require.True(t, ok)

	held := -1
	want := []domain.Seat{
		{ID: seatID(seats, 1, 1), ScreeningID: 1, Row: 1, Column: 1},
		{ID: seatID(seats, 1, 2), ScreeningID: 1, Row: 1, Column: 2, OrderID: &held},
		{ID: seatID(seats, 2, 1), ScreeningID: 1, Row: 2, Column: 1},
		{ID: seatID(seats, 2, 2), ScreeningID: 1, Row: 2, Column: 2},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("seat snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSeatsUnknownScreening(t *testing.T) {
	inv := New()

	_, ok := inv.Seats(42)

	require.False(t, ok)
}

func TestAddScreeningRehydratesSoldSeats(t *testing.T) {
	inv := New()

	orderID := 7
	inv.AddScreening(1, []domain.Seat{
		{ID: 1, ScreeningID: 1, Row: 1, Column: 1, OrderID: &orderID},
		{ID: 2, ScreeningID: 1, Row: 1, Column: 2},
	})

	err := inv.Reserve(1, []int{1}, uuid.New())
	require.ErrorIs(t, err, domain.ErrSeatAlreadyReserved)

	err = inv.Reserve(1, []int{2}, uuid.New())
	require.NoError(t, err)
}

func TestRemoveScreening(t *testing.T) {
	inv := New()
	testGrid(t, inv, 1, 5, 10)

	inv.RemoveScreening(1)
	inv.RemoveScreening(1)

	err := inv.Reserve(1, []int{1}, uuid.New())
	require.ErrorIs(t, err, domain.ErrNoSuchSeat)
}

func TestGrid(t *testing.T) {
	seats := Grid(3, 5, 10)

	require.Len(t, seats, 50)
	assert.Equal(t, domain.Seat{ScreeningID: 3, Row: 1, Column: 1}, seats[0])
	assert.Equal(t, domain.Seat{ScreeningID: 3, Row: 5, Column: 10}, seats[49])
}
