package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) ListSeats(ctx context.Context, roomID int) ([]domain.Seat, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) BookedSeatIDs(ctx context.Context, showtimeID int) (map[int]bool, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]bool), args.Error(1)
}

func (m *MockSeatRepo) LockSeats(ctx context.Context, showtimeID int, seatIDs []int) error {
	args := m.Called(ctx, showtimeID, seatIDs)
	return args.Error(0)
}

func (m *MockSeatRepo) MarkBooked(ctx context.Context, showtimeID int, seatIDs []int, bookingID int) error {
	args := m.Called(ctx, showtimeID, seatIDs, bookingID)
	return args.Error(0)
}

func (m *MockSeatRepo) Release(ctx context.Context, showtimeID int, seatIDs []int) error {
	args := m.Called(ctx, showtimeID, seatIDs)
	return args.Error(0)
}
