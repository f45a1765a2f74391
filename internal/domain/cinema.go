package domain

import "context"

// Cinema is a single auditorium (hall) in a city, with a fixed seat grid.
// HallNumber is assigned per city: the first hall in a city is 1, the next 2, and so on.
type Cinema struct {
	ID         int
	City       string
	HallNumber int
	Rows       int
	Columns    int
}

const (
	MinRows    = 5
	MaxRows    = 15
	MinColumns = 10
	MaxColumns = 30
)

func (c Cinema) ValidSize() bool {
	return c.Rows >= MinRows && c.Rows <= MaxRows && c.Columns >= MinColumns && c.Columns <= MaxColumns
}

type CinemaRepository interface {
	Create(ctx context.Context, cinema *Cinema) error
	Update(ctx context.Context, cinema *Cinema) error
	Delete(ctx context.Context, id int) error
	GetById(ctx context.Context, id int) (*Cinema, error)
	GetAll(ctx context.Context) ([]Cinema, error)
	GetByCity(ctx context.Context, city string) ([]Cinema, error)
}
