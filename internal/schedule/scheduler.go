package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/OriKozok/movie-town-server/internal/booking"
	"github.com/OriKozok/movie-town-server/internal/domain"
	"github.com/OriKozok/movie-town-server/internal/inventory"
)

// Scheduler drives screening creation, updates, removal and the periodic
// retirement sweep. It follows write-then-commit ordering throughout: durable
// writes happen first, the in-memory index and inventory are mutated only
// after persistence succeeds, and a claimed slot is released on failure.
type Scheduler struct {
	index     *Index
	inventory *inventory.Inventory
	orders    *booking.Manager

	movieRepo     domain.MovieRepository
	cinemaRepo    domain.CinemaRepository
	screeningRepo domain.ScreeningRepository
	seatRepo      domain.SeatRepository

	logger *slog.Logger
	now    func() time.Time
}

func NewScheduler(
	index *Index,
	inv *inventory.Inventory,
	orders *booking.Manager,
	movieRepo domain.MovieRepository,
	cinemaRepo domain.CinemaRepository,
	screeningRepo domain.ScreeningRepository,
	seatRepo domain.SeatRepository,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		index:         index,
		inventory:     inv,
		orders:        orders,
		movieRepo:     movieRepo,
		cinemaRepo:    cinemaRepo,
		screeningRepo: screeningRepo,
		seatRepo:      seatRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// AddScreening places the screening onto its hall slot, persists it together
// with a fresh seat grid, and commits the interval.
func (s *Scheduler) AddScreening(ctx context.Context, movieID, cinemaID int, start time.Time) (*domain.Screening, error) {
	movie, err := s.movieRepo.GetById(ctx, movieID)
	if err != nil {
		return nil, err
	}

	cinema, err := s.cinemaRepo.GetById(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(movie.Duration) * time.Minute)

	hold, err := s.index.Place(cinemaID, start, end, s.now(), 0)
	if err != nil {
		return nil, err
	}

	screening := domain.Screening{
		MovieID:   movieID,
		CinemaID:  cinemaID,
		StartTime: start,
		EndTime:   end,
	}

	if err := s.screeningRepo.Create(ctx, &screening); err != nil {
		hold.Release()
		return nil, fmt.Errorf("persisting screening: %w", err)
	}

	seats, err := s.seatRepo.CreateBatch(ctx, inventory.Grid(screening.ID, cinema.Rows, cinema.Columns))
	if err != nil {
		hold.Release()
		if delErr := s.screeningRepo.Delete(ctx, screening.ID); delErr != nil {
			s.logger.Error("orphaned screening after seat creation failure",
				"screening_id", screening.ID, "error", delErr)
		}
		return nil, fmt.Errorf("persisting seat grid: %w", err)
	}

	s.inventory.AddScreening(screening.ID, seats)
	hold.Commit(screening.ID)

	return &screening, nil
}

// UpdateScreening moves a screening to a new start time. Movie and hall are
// immutable; a request naming a different movie or hall fails with
// ErrInvalidUpdate. The conflict check excludes the screening itself.
func (s *Scheduler) UpdateScreening(ctx context.Context, id, movieID, cinemaID int, start time.Time) (*domain.Screening, error) {
	stored, err := s.screeningRepo.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if stored.MovieID != movieID || stored.CinemaID != cinemaID {
		return nil, domain.ErrInvalidUpdate
	}

	end := start.Add(stored.EndTime.Sub(stored.StartTime))

	hold, err := s.index.Place(cinemaID, start, end, s.now(), id)
	if err != nil {
		return nil, err
	}

	updated := *stored
	updated.StartTime = start
	updated.EndTime = end

	if err := s.screeningRepo.Update(ctx, &updated); err != nil {
		hold.Release()
		return nil, fmt.Errorf("persisting screening update: %w", err)
	}

	hold.Commit(id)

	return &updated, nil
}

// DeleteScreening removes a screening on admin request, finalizing its orders
// first (CANCELLED when the screening has not played yet).
func (s *Scheduler) DeleteScreening(ctx context.Context, id int) error {
	screening, err := s.screeningRepo.GetById(ctx, id)
	if err != nil {
		return err
	}

	return s.retire(ctx, screening)
}

// RetirementSweep retires every live screening whose end time has passed. It
// is run hourly by the janitor, concurrently with request traffic.
func (s *Scheduler) RetirementSweep(ctx context.Context, now time.Time) {
	screenings, err := s.screeningRepo.GetByEndTimeBefore(ctx, now)
	if err != nil {
		s.logger.Error("retirement sweep: listing ended screenings", "error", err)
		return
	}

	for _, screening := range screenings {
		if err := s.retire(ctx, &screening); err != nil {
			s.logger.Error("retirement sweep: retiring screening",
				"screening_id", screening.ID, "error", err)
			continue
		}

		s.logger.Info("retired screening", "screening_id", screening.ID, "cinema_id", screening.CinemaID)
	}
}

func (s *Scheduler) retire(ctx context.Context, screening *domain.Screening) error {
	if err := s.orders.RetireForScreening(ctx, screening.ID, screening.EndTime); err != nil {
		return err
	}

	if err := s.seatRepo.DeleteByScreeningId(ctx, screening.ID); err != nil {
		return err
	}

	if err := s.screeningRepo.Delete(ctx, screening.ID); err != nil {
		return err
	}

	s.inventory.RemoveScreening(screening.ID)
	s.index.Remove(screening.CinemaID, screening.ID)

	return nil
}

// Rehydrate rebuilds the index and the seat inventory from durable screenings
// and seats after a restart.
func (s *Scheduler) Rehydrate(ctx context.Context) error {
	screenings, err := s.screeningRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading screenings: %w", err)
	}

	for _, screening := range screenings {
		seats, err := s.seatRepo.GetByScreeningId(ctx, screening.ID)
		if err != nil {
			return fmt.Errorf("loading seats of screening %d: %w", screening.ID, err)
		}

		s.index.Restore(screening.CinemaID, screening.ID, screening.StartTime, screening.EndTime)
		s.inventory.AddScreening(screening.ID, seats)
	}

	s.logger.Info("rehydrated schedule", "screenings", len(screenings))

	return nil
}
