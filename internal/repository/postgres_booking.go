package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking header and fills in its id and creation time.
// Seats are attached separately through the seat store.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, total_price, discount_applied, coupon_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return conn(ctx, p.db).QueryRow(
		ctx,
		query,
		booking.UserID,
		booking.ShowtimeID,
		booking.TotalPrice,
		booking.DiscountApplied,
		booking.CouponCode).Scan(&booking.ID, &booking.CreatedAt)
}

func (p *PostgresBookingRepository) GetByIdAndUserId(
	ctx context.Context,
	bookingID int,
	userID int) (*domain.Booking, error) {

	query := `
		SELECT
			b.id,
			b.user_id,
			b.showtime_id,
			b.total_price,
			b.discount_applied,
			b.coupon_code,
			b.created_at,
			COALESCE(array_agg(bs.seat_id ORDER BY bs.seat_id) FILTER (WHERE bs.seat_id IS NOT NULL), '{}')
		FROM bookings b
		LEFT JOIN booking_seats bs ON bs.booking_id = b.id
		WHERE b.id = $1 AND b.user_id = $2
		GROUP BY b.id
	`

	var booking domain.Booking

	err := conn(ctx, p.db).QueryRow(ctx, query, bookingID, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.TotalPrice,
		&booking.DiscountApplied,
		&booking.CouponCode,
		&booking.CreatedAt,
		&booking.SeatIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

// GetForUpdate locks the booking row for the rest of the caller's
// transaction. A concurrent cancellation of the same booking blocks here and
// then sees ErrRecordNotFound.
func (p *PostgresBookingRepository) GetForUpdate(
	ctx context.Context,
	bookingID int,
	userID int) (*domain.Booking, error) {

	tx, ok := txFromContext(ctx)
	if !ok {
		return nil, errNoTransaction
	}

	query := `
		SELECT id, user_id, showtime_id, total_price, discount_applied, coupon_code, created_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	var booking domain.Booking

	err := tx.QueryRow(ctx, query, bookingID, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.TotalPrice,
		&booking.DiscountApplied,
		&booking.CouponCode,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		SELECT seat_id
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_id
	`

	rows, err := tx.Query(ctx, query, booking.ID)
	if err != nil {
		return nil, err
	}

	booking.SeatIDs, err = pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, bookingID int) error {
	query := `
		DELETE FROM bookings
		WHERE id = $1
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, bookingID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
