package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type HoldManager struct {
	tx        domain.Transactor
	showtimes domain.ShowtimeRepository
	seats     domain.SeatRepository
	holds     domain.HoldRepository
	clock     domain.Clock
	ttl       time.Duration

	rejected metric.Int64Counter
}

type HoldManagerOption func(*HoldManager)

// WithHoldTTL overrides the default TTL for new holds.
func WithHoldTTL(d time.Duration) HoldManagerOption {
	return func(m *HoldManager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func NewHoldManager(
	tx domain.Transactor,
	showtimes domain.ShowtimeRepository,
	seats domain.SeatRepository,
	holds domain.HoldRepository,
	clock domain.Clock,
	opts ...HoldManagerOption) *HoldManager {

	m := &HoldManager{
		tx:        tx,
		showtimes: showtimes,
		seats:     seats,
		holds:     holds,
		clock:     clock,
		ttl:       domain.DefaultHoldTTL,
		rejected:  newCounter("holds.rejected", "Hold requests rejected because a seat was held or booked by someone else"),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *HoldManager) TTL() time.Duration {
	return m.ttl
}

// TryHold grants userID a hold on every requested seat or on none of them.
// Seats booked for the showtime or actively held by another user fail the
// whole request with ErrSeatHeldByOther. The caller's own holds are renewed.
// A non-positive ttl falls back to the manager's default.
func (m *HoldManager) TryHold(
	ctx context.Context,
	showtimeID int,
	seatIDs []int,
	userID int,
	ttl time.Duration) (*domain.HoldSet, error) {

	ids := domain.NormalizeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no seats requested", domain.ErrRecordNotFound)
	}

	if ttl <= 0 {
		ttl = m.ttl
	}

	showtime, err := m.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	err = m.ensureSeatsInRoom(ctx, showtime.RoomID, ids)
	if err != nil {
		return nil, err
	}

	var holdSet *domain.HoldSet

	err = m.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := m.seats.LockSeats(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		booked, err := m.seats.BookedSeatIDs(ctx, showtimeID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if booked[id] {
				return fmt.Errorf("%w: seat %d is booked", domain.ErrSeatHeldByOther, id)
			}
		}

		existing, err := m.holds.GetHolds(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		now := m.clock.Now()

		for _, hold := range existing {
			if hold.IsActive(now) && hold.UserID != userID {
				return fmt.Errorf("%w: seat %d is held", domain.ErrSeatHeldByOther, hold.SeatID)
			}
		}

		expiresAt := now.Add(ttl)

		holds := make([]domain.Hold, 0, len(ids))
		for _, id := range ids {
			holds = append(holds, domain.Hold{
				ShowtimeID: showtimeID,
				SeatID:     id,
				UserID:     userID,
				ExpiresAt:  expiresAt,
			})
		}

		err = m.holds.UpsertHolds(ctx, holds)
		if err != nil {
			return err
		}

		holdSet = &domain.HoldSet{
			ShowtimeID: showtimeID,
			UserID:     userID,
			SeatIDs:    ids,
			ExpiresAt:  expiresAt,
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSeatHeldByOther) {
			m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.Int("showtime_id", showtimeID)))
		}

		return nil, err
	}

	return holdSet, nil
}

// ReleaseHold drops the caller's holds on the given seats. Holds that expired
// or belong to another user are left alone.
func (m *HoldManager) ReleaseHold(ctx context.Context, showtimeID int, seatIDs []int, userID int) error {
	ids := domain.NormalizeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil
	}

	return m.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := m.seats.LockSeats(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		_, err = m.holds.DeleteHolds(ctx, showtimeID, ids, userID)
		return err
	})
}

func (m *HoldManager) ensureSeatsInRoom(ctx context.Context, roomID int, seatIDs []int) error {
	seats, err := m.seats.ListSeats(ctx, roomID)
	if err != nil {
		return err
	}

	inRoom := make(map[int]bool, len(seats))
	for _, seat := range seats {
		inRoom[seat.ID] = true
	}

	for _, id := range seatIDs {
		if !inRoom[id] {
			return fmt.Errorf("%w: seat %d", domain.ErrRecordNotFound, id)
		}
	}

	return nil
}
