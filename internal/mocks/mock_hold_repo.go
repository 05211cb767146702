package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepo struct {
	mock.Mock
	domain.HoldRepository
}

func (m *MockHoldRepo) GetHolds(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Hold, error) {
	args := m.Called(ctx, showtimeID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) UpsertHolds(ctx context.Context, holds []domain.Hold) error {
	args := m.Called(ctx, holds)
	return args.Error(0)
}

func (m *MockHoldRepo) DeleteHolds(ctx context.Context, showtimeID int, seatIDs []int, userID int) (int64, error) {
	args := m.Called(ctx, showtimeID, seatIDs, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
