package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type BookingEngineDeps struct {
	Transactor domain.Transactor
	Showtimes  domain.ShowtimeRepository
	Seats      domain.SeatRepository
	Holds      domain.HoldRepository
	Bookings   domain.BookingRepository
	Wallet     *WalletLedger
	Coupons    *CouponValidator
	Notifier   domain.Notifier
	Clock      domain.Clock
	Logger     *slog.Logger
}

// BookingEngine turns holds into paid bookings and reverses them on
// cancellation. Each transition runs as one transaction that locks the
// booking row, then the seats in ascending order, then the wallet row.
type BookingEngine struct {
	tx        domain.Transactor
	showtimes domain.ShowtimeRepository
	seats     domain.SeatRepository
	holds     domain.HoldRepository
	bookings  domain.BookingRepository
	wallet    *WalletLedger
	coupons   *CouponValidator
	notifier  domain.Notifier
	clock     domain.Clock
	logger    *slog.Logger

	confirmed metric.Int64Counter
	cancelled metric.Int64Counter
}

func NewBookingEngine(deps BookingEngineDeps) *BookingEngine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingEngine{
		tx:        deps.Transactor,
		showtimes: deps.Showtimes,
		seats:     deps.Seats,
		holds:     deps.Holds,
		bookings:  deps.Bookings,
		wallet:    deps.Wallet,
		coupons:   deps.Coupons,
		notifier:  deps.Notifier,
		clock:     deps.Clock,
		logger:    logger,
		confirmed: newCounter("bookings.confirmed", "Bookings committed"),
		cancelled: newCounter("bookings.cancelled", "Bookings cancelled and refunded"),
	}
}

type BookingResult struct {
	Booking domain.Booking
	Summary domain.BookingSummary
}

// ConfirmBooking charges userID for the seats they hold and books them.
//
// The booked, hold and balance checks made before the transaction only
// reject requests early. Booked seats are checked before holds, since the
// winner of a race deletes its holds when it commits. Inside the transaction
// the seats are locked and both are read again, so a seat that was booked in
// between fails with ErrSeatConflict and a hold that was lost fails with
// ErrHoldExpired. Nothing is persisted unless every step succeeds.
func (e *BookingEngine) ConfirmBooking(
	ctx context.Context,
	userID int,
	showtimeID int,
	seatIDs []int,
	couponCode string) (*BookingResult, error) {

	ids := domain.NormalizeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", domain.ErrHoldExpired)
	}

	showtime, err := e.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	labels, err := e.seatLabels(ctx, showtime.RoomID, ids)
	if err != nil {
		return nil, err
	}

	err = e.checkNotBooked(ctx, showtimeID, ids)
	if err != nil {
		return nil, err
	}

	err = e.checkHolds(ctx, showtimeID, ids, userID)
	if err != nil {
		return nil, err
	}

	quote, err := e.coupons.PriceWithCoupon(ctx, showtime.Price*int64(len(ids)), couponCode)
	if err != nil {
		return nil, err
	}

	balance, err := e.wallet.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance < quote.Final {
		return nil, fmt.Errorf("%w: balance %d, required %d", domain.ErrInsufficientFunds, balance, quote.Final)
	}

	booking := domain.Booking{
		UserID:          userID,
		ShowtimeID:      showtimeID,
		SeatIDs:         ids,
		TotalPrice:      quote.Final,
		DiscountApplied: quote.Discount,
		CouponCode:      quote.CouponCode,
	}

	err = e.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := e.seats.LockSeats(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		err = e.checkNotBooked(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		err = e.checkHolds(ctx, showtimeID, ids, userID)
		if err != nil {
			return err
		}

		err = e.bookings.Create(ctx, &booking)
		if err != nil {
			return err
		}

		if booking.TotalPrice > 0 {
			_, err = e.wallet.Debit(ctx, userID, booking.TotalPrice, domain.ReasonBookingPayment(booking.ID))
			if err != nil {
				return err
			}
		}

		err = e.seats.MarkBooked(ctx, showtimeID, ids, booking.ID)
		if err != nil {
			return err
		}

		_, err = e.holds.DeleteHolds(ctx, showtimeID, ids, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := e.summary(booking, showtime, labels)

	e.confirmed.Add(ctx, 1, metric.WithAttributes(attribute.Int("showtime_id", showtimeID)))
	e.logger.Info("booking confirmed",
		"booking_id", booking.ID,
		"user_id", userID,
		"showtime_id", showtimeID,
		"amount", booking.TotalPrice,
		"discount", booking.DiscountApplied)

	err = e.notifier.BookingConfirmed(ctx, summary)
	if err != nil {
		e.logger.Warn("failed to publish booking confirmation", "booking_id", booking.ID, "error", err)
	}

	return &BookingResult{Booking: booking, Summary: summary}, nil
}

// CancelBooking refunds exactly what was charged for the booking, releases its
// seats and deletes it. Showings that already started cannot be cancelled.
func (e *BookingEngine) CancelBooking(ctx context.Context, userID int, bookingID int) (*BookingResult, error) {
	booking, err := e.bookings.GetByIdAndUserId(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	showtime, err := e.showtimes.GetByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, err
	}

	if showtime.HasStarted(e.clock.Now()) {
		return nil, domain.ErrShowtimeElapsed
	}

	var cancelled *domain.Booking

	err = e.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := e.bookings.GetForUpdate(ctx, bookingID, userID)
		if err != nil {
			return err
		}

		err = e.seats.LockSeats(ctx, locked.ShowtimeID, locked.SeatIDs)
		if err != nil {
			return err
		}

		if locked.TotalPrice > 0 {
			_, err = e.wallet.Credit(ctx, userID, locked.TotalPrice, domain.ReasonBookingRefund(locked.ID))
			if err != nil {
				return err
			}
		}

		err = e.seats.Release(ctx, locked.ShowtimeID, locked.SeatIDs)
		if err != nil {
			return err
		}

		err = e.bookings.Delete(ctx, locked.ID)
		if err != nil {
			return err
		}

		cancelled = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	labels, err := e.seatLabels(ctx, showtime.RoomID, cancelled.SeatIDs)
	if err != nil {
		e.logger.Warn("failed to resolve seat labels", "booking_id", cancelled.ID, "error", err)
	}

	summary := e.summary(*cancelled, showtime, labels)

	e.cancelled.Add(ctx, 1, metric.WithAttributes(attribute.Int("showtime_id", showtime.ID)))
	e.logger.Info("booking cancelled",
		"booking_id", cancelled.ID,
		"user_id", userID,
		"refund", cancelled.TotalPrice)

	err = e.notifier.BookingCancelled(ctx, summary)
	if err != nil {
		e.logger.Warn("failed to publish booking cancellation", "booking_id", cancelled.ID, "error", err)
	}

	return &BookingResult{Booking: *cancelled, Summary: summary}, nil
}

// checkHolds fails with ErrHoldExpired unless userID holds every seat.
func (e *BookingEngine) checkNotBooked(ctx context.Context, showtimeID int, seatIDs []int) error {
	booked, err := e.seats.BookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return err
	}

	for _, id := range seatIDs {
		if booked[id] {
			return fmt.Errorf("%w: seat %d", domain.ErrSeatConflict, id)
		}
	}

	return nil
}

func (e *BookingEngine) checkHolds(ctx context.Context, showtimeID int, seatIDs []int, userID int) error {
	holds, err := e.holds.GetHolds(ctx, showtimeID, seatIDs)
	if err != nil {
		return err
	}

	now := e.clock.Now()

	held := make(map[int]bool, len(holds))
	for _, hold := range holds {
		if hold.IsActiveFor(userID, now) {
			held[hold.SeatID] = true
		}
	}

	for _, id := range seatIDs {
		if !held[id] {
			return fmt.Errorf("%w: seat %d", domain.ErrHoldExpired, id)
		}
	}

	return nil
}

// seatLabels resolves the labels of seatIDs in the given room, failing with
// ErrRecordNotFound for seats outside it.
func (e *BookingEngine) seatLabels(ctx context.Context, roomID int, seatIDs []int) ([]string, error) {
	seats, err := e.seats.ListSeats(ctx, roomID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	labels := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: seat %d", domain.ErrRecordNotFound, id)
		}

		labels = append(labels, seat.Label())
	}

	return labels, nil
}

func (e *BookingEngine) summary(booking domain.Booking, showtime *domain.Showtime, labels []string) domain.BookingSummary {
	return domain.BookingSummary{
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		ShowtimeID:      showtime.ID,
		MovieTitle:      showtime.MovieTitle,
		SeatLabels:      labels,
		AmountCharged:   booking.TotalPrice,
		DiscountApplied: booking.DiscountApplied,
		ShowtimeStart:   showtime.StartTime,
		OccurredAt:      e.clock.Now(),
	}
}
