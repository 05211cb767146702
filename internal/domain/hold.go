package domain

import (
	"context"
	"time"
)

const DefaultHoldTTL = 2 * time.Minute

type Hold struct {
	ShowtimeID int
	SeatID     int
	UserID     int
	ExpiresAt  time.Time
}

// IsActive is the only expiry predicate. Every reader of hold state goes
// through it, an expired hold is treated as absent whether or not its row
// has been reaped.
func (h Hold) IsActive(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// IsActiveFor reports whether the hold is active and owned by userID.
func (h Hold) IsActiveFor(userID int, now time.Time) bool {
	return h.UserID == userID && h.IsActive(now)
}

type HoldSet struct {
	ShowtimeID int
	UserID     int
	SeatIDs    []int
	ExpiresAt  time.Time
}

type HoldRepository interface {
	// GetHolds returns the stored holds for the given seats, expired ones included.
	GetHolds(ctx context.Context, showtimeID int, seatIDs []int) ([]Hold, error)
	UpsertHolds(ctx context.Context, holds []Hold) error
	DeleteHolds(ctx context.Context, showtimeID int, seatIDs []int, userID int) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
