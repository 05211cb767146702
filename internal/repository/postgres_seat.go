package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) ListSeats(ctx context.Context, roomID int) ([]domain.Seat, error) {
	query := `
		SELECT id, room_id, row_label, seat_number
		FROM seats
		WHERE room_id = $1
		ORDER BY row_label, seat_number
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.RoomID,
			&seat.RowLabel,
			&seat.Number,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) BookedSeatIDs(ctx context.Context, showtimeID int) (map[int]bool, error) {
	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE showtime_id = $1
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}

	seatIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, err
	}

	booked := make(map[int]bool, len(seatIDs))
	for _, seatID := range seatIDs {
		booked[seatID] = true
	}

	return booked, nil
}

// LockSeats takes a transaction scoped advisory lock per (showtime, seat) in
// ascending seat order. Every writer of hold or booking state for a seat goes
// through these locks.
func (p *PostgresSeatRepository) LockSeats(ctx context.Context, showtimeID int, seatIDs []int) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return errNoTransaction
	}

	for _, seatID := range domain.NormalizeSeatIDs(seatIDs) {
		_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, showtimeID, seatID)
		if err != nil {
			return fmt.Errorf("failed to lock seat %d: %w", seatID, err)
		}
	}

	return nil
}

func (p *PostgresSeatRepository) MarkBooked(
	ctx context.Context,
	showtimeID int,
	seatIDs []int,
	bookingID int) error {

	return inTx(ctx, p.db, func(q DBTX) error {
		query := `
			SELECT seat_id
			FROM booking_seats
			WHERE showtime_id = $1 AND seat_id = ANY($2)
		`

		rows, err := q.Query(ctx, query, showtimeID, seatIDs)
		if err != nil {
			return err
		}

		taken, err := pgx.CollectRows(rows, pgx.RowTo[int])
		if err != nil {
			return err
		}

		if len(taken) > 0 {
			return fmt.Errorf("%w: seats %v", domain.ErrSeatConflict, taken)
		}

		rowsToCopy := make([][]any, 0, len(seatIDs))
		for _, seatID := range seatIDs {
			rowsToCopy = append(rowsToCopy, []any{bookingID, showtimeID, seatID})
		}

		_, err = q.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "showtime_id", "seat_id"},
			pgx.CopyFromRows(rowsToCopy),
		)
		if err != nil {
			if isPgError(err, pgerrcode.UniqueViolation) {
				return fmt.Errorf("%w: %w", domain.ErrSeatConflict, err)
			}

			return err
		}

		return nil
	})
}

func (p *PostgresSeatRepository) Release(ctx context.Context, showtimeID int, seatIDs []int) error {
	query := `
		DELETE FROM booking_seats
		WHERE showtime_id = $1 AND seat_id = ANY($2)
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, showtimeID, seatIDs)
	return err
}
