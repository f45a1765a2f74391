package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

var clock = time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)

// at returns a same-day timestamp, e.g. at(10, 30) is 10:30.
func at(hour, minute int) time.Time {
	return time.Date(2030, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestPlaceOverlap(t *testing.T) {
	// An existing screening holds [10:00, 12:00) in hall 1.
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:  "right after the existing screening",
			start: at(12, 0),
			end:   at(14, 0),
		},
		{
			name:  "right before the existing screening",
			start: at(9, 0),
			end:   at(10, 0),
		},
		{
			name:    "clipping the tail",
			start:   at(11, 0),
			end:     at(13, 0),
			wantErr: domain.ErrUnavailableTime,
		},
		{
			name:    "clipping the head",
			start:   at(9, 0),
			end:     at(10, 30),
			wantErr: domain.ErrUnavailableTime,
		},
		{
			name:    "contained in the existing screening",
			start:   at(10, 30),
			end:     at(11, 30),
			wantErr: domain.ErrUnavailableTime,
		},
		{
			name:    "swallowing the existing screening",
			start:   at(9, 0),
			end:     at(13, 0),
			wantErr: domain.ErrUnavailableTime,
		},
		{
			name:    "identical interval",
			start:   at(10, 0),
			end:     at(12, 0),
			wantErr: domain.ErrUnavailableTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex()
			idx.Restore(1, 100, at(10, 0), at(12, 0))

			hold, err := idx.Place(1, tt.start, tt.end, clock, 0)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			hold.Commit(101)
		})
	}
}

func TestPlaceRejectsNonFutureStart(t *testing.T) {
	idx := NewIndex()

	_, err := idx.Place(1, clock.Add(-time.Hour), clock.Add(time.Hour), clock, 0)
	require.ErrorIs(t, err, domain.ErrUnavailableTime)

	// A start equal to now is not strictly in the future either.
	_, err = idx.Place(1, clock, clock.Add(2*time.Hour), clock, 0)
	require.ErrorIs(t, err, domain.ErrUnavailableTime)
}

func TestPlaceDifferentHallsDoNotConflict(t *testing.T) {
	idx := NewIndex()
	idx.Restore(1, 100, at(10, 0), at(12, 0))

	hold, err := idx.Place(2, at(10, 0), at(12, 0), clock, 0)

	require.NoError(t, err)
	hold.Commit(200)
}

func TestPlaceExcludesTheScreeningBeingMoved(t *testing.T) {
	idx := NewIndex()
	idx.Restore(1, 100, at(10, 0), at(12, 0))
	idx.Restore(1, 101, at(14, 0), at(16, 0))

	// Shifting screening 100 by half an hour overlaps only its own old slot.
	hold, err := idx.Place(1, at(10, 30), at(12, 30), clock, 100)
	require.NoError(t, err)
	hold.Commit(100)

	// Moving it onto another screening's slot still fails.
	_, err = idx.Place(1, at(15, 0), at(17, 0), clock, 100)
	require.ErrorIs(t, err, domain.ErrUnavailableTime)
}

func TestCommitDropsTheOldInterval(t *testing.T) {
	idx := NewIndex()
	idx.Restore(1, 100, at(10, 0), at(12, 0))

	hold, err := idx.Place(1, at(14, 0), at(16, 0), clock, 100)
	require.NoError(t, err)
	hold.Commit(100)

	// The old [10:00, 12:00) slot is free again.
	hold, err = idx.Place(1, at(10, 0), at(12, 0), clock, 0)
	require.NoError(t, err)
	hold.Commit(101)
}

func TestHoldBlocksConcurrentPlacement(t *testing.T) {
	idx := NewIndex()

	hold, err := idx.Place(1, at(10, 0), at(12, 0), clock, 0)
	require.NoError(t, err)

	// The slot is claimed even though no screening id is bound yet.
	_, err = idx.Place(1, at(11, 0), at(13, 0), clock, 0)
	require.ErrorIs(t, err, domain.ErrUnavailableTime)

	// Releasing the hold frees the slot.
	hold.Release()

	hold, err = idx.Place(1, at(11, 0), at(13, 0), clock, 0)
	require.NoError(t, err)
	hold.Commit(100)
}

func TestRemove(t *testing.T) {
	idx := NewIndex()
	idx.Restore(1, 100, at(10, 0), at(12, 0))

	idx.Remove(1, 100)
	idx.Remove(1, 100)

	hold, err := idx.Place(1, at(10, 0), at(12, 0), clock, 0)
	require.NoError(t, err)
	hold.Commit(101)
}

func TestPlaceConcurrentContention(t *testing.T) {
	idx := NewIndex()

	const competitors = 50

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < competitors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			hold, err := idx.Place(1, at(10, 0), at(12, 0), clock, 0)
			if err != nil {
				return
			}
			hold.Commit(i + 1)

			mu.Lock()
			wins++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
