package domain

import (
	"context"
	"time"
)

type Showtime struct {
	ID         int
	MovieTitle string
	RoomID     int
	StartTime  time.Time
	Price      int64
}

// HasStarted reports whether the showing can no longer be cancelled.
func (s Showtime) HasStarted(now time.Time) bool {
	return s.StartTime.Before(now)
}

type ShowtimeRepository interface {
	GetByID(ctx context.Context, id int) (*Showtime, error)
}
