// Package booking owns the order lifecycle on top of the seat inventory.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/OriKozok/movie-town-server/internal/domain"
	"github.com/OriKozok/movie-town-server/internal/inventory"
)

// Manager is the only writer of seat occupancy. Callers never touch seats
// directly; they place and cancel orders and the manager keeps the durable
// store and the in-memory inventory in lockstep.
type Manager struct {
	inventory *inventory.Inventory
	orderRepo domain.OrderRepository
	seatRepo  domain.SeatRepository
	unitPrice decimal.Decimal
	now       func() time.Time
}

func NewManager(
	inv *inventory.Inventory,
	orderRepo domain.OrderRepository,
	seatRepo domain.SeatRepository,
	unitPrice decimal.Decimal,
) *Manager {
	return &Manager{
		inventory: inv,
		orderRepo: orderRepo,
		seatRepo:  seatRepo,
		unitPrice: unitPrice,
		now:       time.Now,
	}
}

// PlaceOrder reserves the seats and persists a NOT_WATCHED order priced at
// seat count times the unit price. The reservation is taken first, in the
// inventory's critical section, so no competing order can observe a partial
// claim; if the durable write then fails the reservation is rolled back and
// nothing is left occupied.
func (m *Manager) PlaceOrder(ctx context.Context, userID, screeningID int, seatIDs []int) (*domain.Order, error) {
	ref := uuid.New()

	if err := m.inventory.Reserve(screeningID, seatIDs, ref); err != nil {
		return nil, err
	}

	order := domain.NewOrder(userID, screeningID, len(seatIDs), m.unitPrice)
	order.Reference = ref

	if err := m.orderRepo.Create(ctx, &order, seatIDs); err != nil {
		m.inventory.Release(screeningID, seatIDs)
		return nil, fmt.Errorf("persisting order: %w", err)
	}

	return &order, nil
}

// CancelOrder releases the order's seats and marks it CANCELLED. Only the
// order's owner may cancel it, and only while it is still NOT_WATCHED. The
// status change and the seat release are persisted in one transaction; the
// in-memory release follows only after the write succeeds.
func (m *Manager) CancelOrder(ctx context.Context, orderID, userID int) error {
	order, err := m.orderRepo.GetById(ctx, orderID)
	if err != nil {
		return err
	}

	if order.UserID != userID {
		return domain.ErrUnauthorized
	}
	if order.Status != domain.OrderNotWatched {
		return domain.ErrOrderNotCancellable
	}

	seats, err := m.seatRepo.GetByOrderId(ctx, orderID)
	if err != nil {
		return err
	}

	if err := m.orderRepo.Finalize(ctx, orderID, domain.OrderCancelled); err != nil {
		return fmt.Errorf("cancelling order %d: %w", orderID, err)
	}

	m.inventory.Release(order.ScreeningID, seatIDs(seats))

	return nil
}

// RetireForScreening finalizes every still-active order of a retired
// screening: WATCHED when the screening has played, CANCELLED when it was
// removed before playing. Orders already in a terminal status are untouched,
// so running the sweep twice frees nothing a second time.
func (m *Manager) RetireForScreening(ctx context.Context, screeningID int, screeningEnd time.Time) error {
	orders, err := m.orderRepo.GetActiveByScreeningId(ctx, screeningID)
	if err != nil {
		return err
	}

	status := domain.OrderCancelled
	if !screeningEnd.After(m.now()) {
		status = domain.OrderWatched
	}

	for _, order := range orders {
		seats, err := m.seatRepo.GetByOrderId(ctx, order.ID)
		if err != nil {
			return err
		}

		if err := m.orderRepo.Finalize(ctx, order.ID, status); err != nil {
			return fmt.Errorf("retiring order %d: %w", order.ID, err)
		}

		m.inventory.Release(screeningID, seatIDs(seats))
	}

	return nil
}

func seatIDs(seats []domain.Seat) []int {
	ids := make([]int, len(seats))
	for i, seat := range seats {
		ids[i] = seat.ID
	}

	return ids
}
