package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetByID(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT s.id, m.title, s.room_id, s.start_time, s.price
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var showtime domain.Showtime

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieTitle,
		&showtime.RoomID,
		&showtime.StartTime,
		&showtime.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}
