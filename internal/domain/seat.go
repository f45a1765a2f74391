package domain

import "context"

// Seat belongs to exactly one screening for its whole lifetime. OrderID is nil
// while the seat is free and set while it is part of an active order.
type Seat struct {
	ID          int
	ScreeningID int
	Row         int
	Column      int
	OrderID     *int
}

func (s Seat) Reserved() bool {
	return s.OrderID != nil
}

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []Seat) ([]Seat, error)
	GetByScreeningId(ctx context.Context, screeningID int) ([]Seat, error)
	GetByOrderId(ctx context.Context, orderID int) ([]Seat, error)
	DeleteByScreeningId(ctx context.Context, screeningID int) error
}
