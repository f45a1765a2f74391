package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) CreateBatch(ctx context.Context, seats []domain.Seat) ([]domain.Seat, error) {
	args := m.Called(ctx, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) GetByScreeningId(ctx context.Context, screeningID int) ([]domain.Seat, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) GetByOrderId(ctx context.Context, orderID int) ([]domain.Seat, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) DeleteByScreeningId(ctx context.Context, screeningID int) error {
	args := m.Called(ctx, screeningID)
	return args.Error(0)
}
