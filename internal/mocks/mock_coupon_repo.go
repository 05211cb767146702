package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCouponRepo struct {
	mock.Mock
	domain.CouponRepository
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
