package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/service"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	var couponCode string
	if input.CouponCode != nil {
		couponCode = *input.CouponCode
	}

	userId := app.contextGetUserId(r)

	result, err := app.bookings.ConfirmBooking(r.Context(), userId, input.ShowtimeId, input.SeatIds, couponCode)
	if err != nil {
		app.contextGetLogger(r).Info("booking rejected", "showtime_id", input.ShowtimeId, "reason", err.Error())
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(result), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be greater than zero"))
		return
	}

	result, err := app.bookings.CancelBooking(r.Context(), app.contextGetUserId(r), bookingId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.CancelBookingResponse{
		BookingId:      result.Booking.ID,
		RefundedAmount: result.Booking.TotalPrice,
		ReleasedSeats:  result.Summary.SeatLabels,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(result *service.BookingResult) api.BookingResponse {
	return api.BookingResponse{
		Id:              result.Booking.ID,
		ShowtimeId:      result.Booking.ShowtimeID,
		MovieTitle:      result.Summary.MovieTitle,
		SeatIds:         result.Booking.SeatIDs,
		SeatLabels:      result.Summary.SeatLabels,
		TotalPrice:      result.Booking.TotalPrice,
		DiscountApplied: result.Booking.DiscountApplied,
		CouponCode:      result.Booking.CouponCode,
		ShowtimeStart:   result.Summary.ShowtimeStart,
		CreatedAt:       result.Booking.CreatedAt,
		QrPayload:       result.Summary.QRPayload(),
	}
}
