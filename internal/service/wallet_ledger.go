package service

import (
	"context"
	"fmt"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

// WalletLedger keeps balance changes and their ledger entries together. Every
// mutation locks the account row for the rest of the surrounding transaction.
type WalletLedger struct {
	tx      domain.Transactor
	wallets domain.WalletRepository
}

func NewWalletLedger(tx domain.Transactor, wallets domain.WalletRepository) *WalletLedger {
	return &WalletLedger{
		tx:      tx,
		wallets: wallets,
	}
}

// GetBalance returns the balance, opening a zero account on first access.
func (l *WalletLedger) GetBalance(ctx context.Context, userID int) (int64, error) {
	account, err := l.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (l *WalletLedger) Credit(ctx context.Context, userID int, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	return l.apply(ctx, userID, amount, reason)
}

func (l *WalletLedger) Debit(ctx context.Context, userID int, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	return l.apply(ctx, userID, -amount, reason)
}

func (l *WalletLedger) apply(ctx context.Context, userID int, delta int64, reason string) (int64, error) {
	var balance int64

	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		account, err := l.wallets.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if account.Balance+delta < 0 {
			return fmt.Errorf("%w: balance %d, required %d", domain.ErrInsufficientFunds, account.Balance, -delta)
		}

		balance, err = l.wallets.Apply(ctx, &domain.LedgerEntry{
			UserID: userID,
			Delta:  delta,
			Reason: reason,
		})

		return err
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// History returns the account's ledger entries, newest first.
func (l *WalletLedger) History(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.LedgerEntry, *domain.Metadata, error) {

	return l.wallets.History(ctx, userID, pagination)
}
