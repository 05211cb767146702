package domain

import (
	"context"
	"fmt"
	"slices"
)

type Seat struct {
	ID       int
	RoomID   int
	RowLabel string
	Number   int
}

// Label returns the printed seat label, e.g. "A7".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.RowLabel, s.Number)
}

// SeatRepository keeps the per showtime seat state. Booked state is keyed by
// (showtime, seat), the physical seat layout is shared by every showtime of a room.
type SeatRepository interface {
	ListSeats(ctx context.Context, roomID int) ([]Seat, error)
	BookedSeatIDs(ctx context.Context, showtimeID int) (map[int]bool, error)
	LockSeats(ctx context.Context, showtimeID int, seatIDs []int) error
	MarkBooked(ctx context.Context, showtimeID int, seatIDs []int, bookingID int) error
	Release(ctx context.Context, showtimeID int, seatIDs []int) error
}

// NormalizeSeatIDs returns the seat ids sorted ascending without duplicates.
// Locks are always taken in this order.
func NormalizeSeatIDs(seatIDs []int) []int {
	ids := slices.Clone(seatIDs)
	slices.Sort(ids)

	return slices.Compact(ids)
}
