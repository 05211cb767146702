package domain

import (
	"context"
	"time"
)

type Coupon struct {
	Code            string
	DiscountPercent int
	ExpiresOn       time.Time
	Active          bool
}

// IsValid reports whether the coupon can be redeemed at now. The expiry is a
// calendar date and stays valid for the whole day.
func (c Coupon) IsValid(now time.Time) bool {
	if !c.Active {
		return false
	}

	return !dateOf(c.ExpiresOn).Before(dateOf(now))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
}
