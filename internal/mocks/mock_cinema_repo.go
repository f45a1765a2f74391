package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type MockCinemaRepo struct {
	mock.Mock
	domain.CinemaRepository
}

func (m *MockCinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	args := m.Called(ctx, cinema)
	return args.Error(0)
}

func (m *MockCinemaRepo) Update(ctx context.Context, cinema *domain.Cinema) error {
	args := m.Called(ctx, cinema)
	return args.Error(0)
}

func (m *MockCinemaRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCinemaRepo) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cinema), args.Error(1)
}

func (m *MockCinemaRepo) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cinema), args.Error(1)
}

func (m *MockCinemaRepo) GetByCity(ctx context.Context, city string) ([]domain.Cinema, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cinema), args.Error(1)
}
