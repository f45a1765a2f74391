package domain

import (
	"context"
	"time"
)

// Screening is a movie showing in a cinema hall. EndTime is derived from the
// movie duration at creation time and persisted so that the schedule index and
// the retirement sweep never need a join to compute it.
type Screening struct {
	ID        int
	MovieID   int
	CinemaID  int
	StartTime time.Time
	EndTime   time.Time
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *Screening) error
	Update(ctx context.Context, screening *Screening) error
	Delete(ctx context.Context, id int) error
	GetById(ctx context.Context, id int) (*Screening, error)
	GetAll(ctx context.Context) ([]Screening, error)
	GetByMovieId(ctx context.Context, movieID int) ([]Screening, error)
	GetByCinemaId(ctx context.Context, cinemaID int) ([]Screening, error)
	GetByEndTimeBefore(ctx context.Context, t time.Time) ([]Screening, error)
}
