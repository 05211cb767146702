package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresHoldRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHoldRepository(db *pgxpool.Pool) *PostgresHoldRepository {
	return &PostgresHoldRepository{
		db: db,
	}
}

func (p *PostgresHoldRepository) GetHolds(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Hold, error) {
	query := `
		SELECT showtime_id, seat_id, user_id, expires_at
		FROM seat_holds
		WHERE showtime_id = $1 AND seat_id = ANY($2)
		ORDER BY seat_id
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holds := make([]domain.Hold, 0, len(seatIDs))

	for rows.Next() {
		var hold domain.Hold

		err = rows.Scan(
			&hold.ShowtimeID,
			&hold.SeatID,
			&hold.UserID,
			&hold.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}

// UpsertHolds writes the holds, overwriting whatever row exists for the same
// (showtime, seat). Callers decide beforehand whether overwriting is allowed.
func (p *PostgresHoldRepository) UpsertHolds(ctx context.Context, holds []domain.Hold) error {
	if len(holds) == 0 {
		return nil
	}

	query := `
		INSERT INTO seat_holds (showtime_id, seat_id, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (showtime_id, seat_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			expires_at = EXCLUDED.expires_at,
			created_at = NOW()
	`

	return inTx(ctx, p.db, func(q DBTX) error {
		batch := &pgx.Batch{}
		for _, hold := range holds {
			batch.Queue(query, hold.ShowtimeID, hold.SeatID, hold.UserID, hold.ExpiresAt)
		}

		br := q.SendBatch(ctx, batch)

		var errs []error
		for range holds {
			_, err := br.Exec()
			if err != nil {
				errs = append(errs, err)
			}
		}

		return errors.Join(append(errs, br.Close())...)
	})
}

func (p *PostgresHoldRepository) DeleteHolds(
	ctx context.Context,
	showtimeID int,
	seatIDs []int,
	userID int) (int64, error) {

	query := `
		DELETE FROM seat_holds
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND user_id = $3
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, showtimeID, seatIDs, userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// DeleteExpired physically removes holds that Hold.IsActive already treats
// as absent.
func (p *PostgresHoldRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM seat_holds
		WHERE expires_at <= $1
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
