package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresCouponRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCouponRepository(db *pgxpool.Pool) *PostgresCouponRepository {
	return &PostgresCouponRepository{
		db: db,
	}
}

// GetByCode looks the coupon up case-insensitively.
func (p *PostgresCouponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `
		SELECT code, discount_percent, expires_on, active
		FROM coupons
		WHERE UPPER(code) = UPPER($1)
	`

	var coupon domain.Coupon

	err := conn(ctx, p.db).QueryRow(ctx, query, code).Scan(
		&coupon.Code,
		&coupon.DiscountPercent,
		&coupon.ExpiresOn,
		&coupon.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &coupon, nil
}
