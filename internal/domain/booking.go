package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Booking struct {
	ID              int
	UserID          int
	ShowtimeID      int
	SeatIDs         []int
	TotalPrice      int64
	DiscountApplied int64
	CouponCode      *string
	CreatedAt       time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByIdAndUserId(ctx context.Context, bookingID, userID int) (*Booking, error)
	// GetForUpdate loads the booking and locks its row for the current transaction.
	GetForUpdate(ctx context.Context, bookingID, userID int) (*Booking, error)
	Delete(ctx context.Context, bookingID int) error
}

// Transactor runs fn as one atomic unit. Repositories called with the
// context handed to fn take part in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingSummary is the read only projection handed to notification and QR
// collaborators once a booking has been committed or cancelled.
type BookingSummary struct {
	BookingID       int       `json:"bookingId"`
	UserID          int       `json:"userId"`
	ShowtimeID      int       `json:"showtimeId"`
	MovieTitle      string    `json:"movieTitle"`
	SeatLabels      []string  `json:"seatLabels"`
	AmountCharged   int64     `json:"amountCharged"`
	DiscountApplied int64     `json:"discountApplied"`
	ShowtimeStart   time.Time `json:"showtimeStart"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// QRPayload is the text a QR renderer encodes for the ticket.
func (s BookingSummary) QRPayload() string {
	return fmt.Sprintf(
		"BookingID: %d | User: %d | Movie: %s | Seats: %s",
		s.BookingID,
		s.UserID,
		s.MovieTitle,
		strings.Join(s.SeatLabels, ", "),
	)
}

type Notifier interface {
	BookingConfirmed(ctx context.Context, summary BookingSummary) error
	BookingCancelled(ctx context.Context, summary BookingSummary) error
}
