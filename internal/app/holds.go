package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

func (app *Application) HoldSeats(w http.ResponseWriter, r *http.Request, showtimeId int) {
	logger := app.contextGetLogger(r)

	if showtimeId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID must be greater than zero"))
		return
	}

	var input api.HoldSeatsRequest

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

	userId := app.contextGetUserId(r)

	holdSet, err := app.holds.TryHold(r.Context(), showtimeId, input.SeatIds, userId, 0)
	if err != nil {
		if errors.Is(err, domain.ErrSeatHeldByOther) {
			logger.Info("hold rejected", "showtime_id", showtimeId, "seat_ids", input.SeatIds, "reason", err.Error())
		}

		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("seats held", "showtime_id", showtimeId, "seat_ids", holdSet.SeatIDs, "expires_at", holdSet.ExpiresAt)

	resp := api.HoldResponse{
		ShowtimeId: holdSet.ShowtimeID,
		SeatIds:    holdSet.SeatIDs,
		ExpiresAt:  holdSet.ExpiresAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReleaseSeats(w http.ResponseWriter, r *http.Request, showtimeId int) {
	if showtimeId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID must be greater than zero"))
		return
	}

	var input api.HoldSeatsRequest

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

	err = app.holds.ReleaseHold(r.Context(), showtimeId, input.SeatIds, app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
