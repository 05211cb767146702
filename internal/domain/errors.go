package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrSeatHeldByOther   = errors.New("seat(s) are held or booked by another customer")
	ErrSeatConflict      = errors.New("seat(s) were booked by another customer")
	ErrHoldExpired       = errors.New("your seat selection has expired, please select your seats again")
	ErrInsufficientFunds = errors.New("wallet balance is not sufficient")
	ErrInvalidCoupon     = errors.New("coupon code is invalid or has expired")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrShowtimeElapsed   = errors.New("showtime has already started")
)
