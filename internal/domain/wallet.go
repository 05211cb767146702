package domain

import (
	"context"
	"fmt"
	"time"
)

type WalletAccount struct {
	UserID    int
	Balance   int64
	UpdatedAt time.Time
}

type LedgerEntry struct {
	ID        int
	UserID    int
	Delta     int64
	Reason    string
	CreatedAt time.Time
}

const ReasonDeposit = "deposit"

func ReasonBookingPayment(bookingID int) string {
	return fmt.Sprintf("payment for booking #%d", bookingID)
}

func ReasonBookingRefund(bookingID int) string {
	return fmt.Sprintf("refund for booking #%d", bookingID)
}

type WalletRepository interface {
	// GetForUpdate creates the account with a zero balance on first
	// reference and returns it locked for the current transaction.
	GetForUpdate(ctx context.Context, userID int) (*WalletAccount, error)
	GetOrCreate(ctx context.Context, userID int) (*WalletAccount, error)
	// Apply changes the balance by delta and appends the ledger entry.
	Apply(ctx context.Context, entry *LedgerEntry) (int64, error)
	History(ctx context.Context, userID int, pagination Pagination) ([]LedgerEntry, *Metadata, error)
}
