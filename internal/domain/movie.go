package domain

import "context"

type Genre string

const (
	Action   Genre = "ACTION"
	Comedy   Genre = "COMEDY"
	Drama    Genre = "DRAMA"
	Horror   Genre = "HORROR"
	Romance  Genre = "ROMANCE"
	Thriller Genre = "THRILLER"
)

type Movie struct {
	ID          int
	Name        string
	Description string
	Genre       Genre
	Duration    int // minutes
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
	GetById(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context) ([]Movie, error)
	GetByGenre(ctx context.Context, genre Genre) ([]Movie, error)
}
