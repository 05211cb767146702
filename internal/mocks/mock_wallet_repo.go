package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepo struct {
	mock.Mock
	domain.WalletRepository
}

func (m *MockWalletRepo) GetForUpdate(ctx context.Context, userID int) (*domain.WalletAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletAccount), args.Error(1)
}

func (m *MockWalletRepo) GetOrCreate(ctx context.Context, userID int) (*domain.WalletAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletAccount), args.Error(1)
}

func (m *MockWalletRepo) Apply(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) History(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.LedgerEntry, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(*domain.Metadata), args.Error(2)
}
