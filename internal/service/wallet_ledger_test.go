package service

import (
	"errors"
	"testing"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/metinatakli/cinema-booking-engine/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletLedgerTestSuite struct {
	suite.Suite
	walletRepo *mocks.MockWalletRepo
	transactor *mocks.MockTransactor
	ledger     *WalletLedger
}

func (s *WalletLedgerTestSuite) SetupTest() {
	s.walletRepo = new(mocks.MockWalletRepo)
	s.transactor = &mocks.MockTransactor{}
	s.ledger = NewWalletLedger(s.transactor, s.walletRepo)
}

func TestWalletLedgerSuite(t *testing.T) {
	suite.Run(t, new(WalletLedgerTestSuite))
}

func (s *WalletLedgerTestSuite) TestGetBalance() {
	s.walletRepo.On("GetOrCreate", mock.Anything, 3).Return(&domain.WalletAccount{UserID: 3, Balance: 0}, nil)

	balance, err := s.ledger.GetBalance(s.T().Context(), 3)

	s.Require().NoError(err)
	s.Zero(balance)
	s.walletRepo.AssertExpectations(s.T())
}

func (s *WalletLedgerTestSuite) TestCredit() {
	tests := []struct {
		name        string
		amount      int64
		setupMock   func()
		wantErr     error
		wantBalance int64
	}{
		{
			name:    "zero amount",
			amount:  0,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			amount:  -5,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "credits and appends a ledger entry",
			amount: 50_000,
			setupMock: func() {
				s.walletRepo.On("GetForUpdate", mock.Anything, 3).Return(&domain.WalletAccount{UserID: 3, Balance: 10_000}, nil)
				s.walletRepo.On("Apply", mock.Anything, &domain.LedgerEntry{
					UserID: 3,
					Delta:  50_000,
					Reason: domain.ReasonDeposit,
				}).Return(int64(60_000), nil)
			},
			wantBalance: 60_000,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.walletRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			balance, err := s.ledger.Credit(s.T().Context(), 3, tt.amount, domain.ReasonDeposit)

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				s.Zero(s.transactor.Calls)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantBalance, balance)
		})
	}
}

func (s *WalletLedgerTestSuite) TestDebit() {
	tests := []struct {
		name        string
		amount      int64
		setupMock   func()
		wantErr     error
		wantBalance int64
	}{
		{
			name:    "zero amount",
			amount:  0,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "balance lower than amount",
			amount: 180_001,
			setupMock: func() {
				s.walletRepo.On("GetForUpdate", mock.Anything, 3).Return(&domain.WalletAccount{UserID: 3, Balance: 180_000}, nil)
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:   "exact balance",
			amount: 180_000,
			setupMock: func() {
				s.walletRepo.On("GetForUpdate", mock.Anything, 3).Return(&domain.WalletAccount{UserID: 3, Balance: 180_000}, nil)
				s.walletRepo.On("Apply", mock.Anything, &domain.LedgerEntry{
					UserID: 3,
					Delta:  -180_000,
					Reason: domain.ReasonBookingPayment(9),
				}).Return(int64(0), nil)
			},
			wantBalance: 0,
		},
		{
			name:   "constraint violation surfaces from the repository",
			amount: 1_000,
			setupMock: func() {
				s.walletRepo.On("GetForUpdate", mock.Anything, 3).Return(&domain.WalletAccount{UserID: 3, Balance: 5_000}, nil)
				s.walletRepo.On("Apply", mock.Anything, mock.Anything).Return(int64(0), domain.ErrInsufficientFunds)
			},
			wantErr: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.walletRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			balance, err := s.ledger.Debit(s.T().Context(), 3, tt.amount, domain.ReasonBookingPayment(9))

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantBalance, balance)
		})
	}
}

func (s *WalletLedgerTestSuite) TestTransactionFailure() {
	s.transactor.Err = errors.New("begin failed")

	_, err := s.ledger.Credit(s.T().Context(), 3, 100, domain.ReasonDeposit)

	s.EqualError(err, "begin failed")
	s.walletRepo.AssertNotCalled(s.T(), "Apply", mock.Anything, mock.Anything)
}

func (s *WalletLedgerTestSuite) TestHistory() {
	pagination := domain.Pagination{Page: 1, PageSize: 2}
	entries := []domain.LedgerEntry{
		{ID: 2, UserID: 3, Delta: -180_000, Reason: domain.ReasonBookingPayment(1)},
		{ID: 1, UserID: 3, Delta: 200_000, Reason: domain.ReasonDeposit},
	}
	metadata := domain.NewMetadata(2, 1, 2)

	s.walletRepo.On("History", mock.Anything, 3, pagination).Return(entries, metadata, nil)

	got, gotMetadata, err := s.ledger.History(s.T().Context(), 3, pagination)

	s.Require().NoError(err)
	s.Equal(entries, got)
	s.Equal(metadata, gotMetadata)
}
