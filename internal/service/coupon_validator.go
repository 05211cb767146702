package service

import (
	"context"
	"errors"
	"strings"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Quote is the price of a seat set after an optional coupon.
type Quote struct {
	Base       int64
	Discount   int64
	Final      int64
	CouponCode *string
}

type CouponValidator struct {
	coupons domain.CouponRepository
	clock   domain.Clock
}

func NewCouponValidator(coupons domain.CouponRepository, clock domain.Clock) *CouponValidator {
	return &CouponValidator{
		coupons: coupons,
		clock:   clock,
	}
}

// PriceWithCoupon applies the coupon to basePrice. An empty code leaves the
// price untouched. Unknown, inactive or expired codes fail with
// ErrInvalidCoupon. The discount is rounded down.
func (v *CouponValidator) PriceWithCoupon(ctx context.Context, basePrice int64, code string) (Quote, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Quote{Base: basePrice, Final: basePrice}, nil
	}

	coupon, err := v.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return Quote{}, domain.ErrInvalidCoupon
		}

		return Quote{}, err
	}

	if !coupon.IsValid(v.clock.Now()) {
		return Quote{}, domain.ErrInvalidCoupon
	}

	discount := decimal.NewFromInt(basePrice).
		Mul(decimal.NewFromInt(int64(coupon.DiscountPercent))).
		Div(hundred).
		Floor().
		IntPart()

	return Quote{
		Base:       basePrice,
		Discount:   discount,
		Final:      basePrice - discount,
		CouponCode: &coupon.Code,
	}, nil
}
