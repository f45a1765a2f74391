package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

// Status transitions are one-directional: NOT_WATCHED -> WATCHED once the
// screening has played, NOT_WATCHED -> CANCELLED on user cancellation or
// removal of an unplayed screening. WATCHED and CANCELLED are terminal.
const (
	OrderNotWatched OrderStatus = "NOT_WATCHED"
	OrderWatched    OrderStatus = "WATCHED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type Order struct {
	ID          int
	Reference   uuid.UUID
	UserID      int
	ScreeningID int
	Price       decimal.Decimal
	Status      OrderStatus
	Seats       []Seat
	CreatedAt   time.Time
}

func NewOrder(userID, screeningID int, seatCount int, unitPrice decimal.Decimal) Order {
	return Order{
		Reference:   uuid.New(),
		UserID:      userID,
		ScreeningID: screeningID,
		Price:       unitPrice.Mul(decimal.NewFromInt(int64(seatCount))),
		Status:      OrderNotWatched,
	}
}

type OrderRepository interface {
	// Create persists the order and binds its seats to it in a single transaction.
	Create(ctx context.Context, order *Order, seatIDs []int) error
	// Finalize moves the order to a terminal status and frees its seats in a
	// single transaction.
	Finalize(ctx context.Context, orderID int, status OrderStatus) error
	GetById(ctx context.Context, id int) (*Order, error)
	GetByUserId(ctx context.Context, userID int) ([]Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	GetActiveByScreeningId(ctx context.Context, screeningID int) ([]Order, error)
}
