package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	appvalidator "github.com/metinatakli/cinema-booking-engine/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrMethodNotAllowed   = "The method is not supported for this resource"
	ErrFailedValidation   = "One or more fields are invalid"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, err)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrs)),
	}

	for i, fieldErr := range validationErrs {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// domainErrorResponse maps the engine's sentinel errors to their HTTP status.
// The sentinel message is sent instead of the wrapped error, which may carry
// storage details.
func (app *Application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatHeldByOther):
		app.errorResponse(w, r, http.StatusConflict, domain.ErrSeatHeldByOther.Error())
	case errors.Is(err, domain.ErrSeatConflict):
		app.errorResponse(w, r, http.StatusConflict, domain.ErrSeatConflict.Error())
	case errors.Is(err, domain.ErrHoldExpired):
		app.errorResponse(w, r, http.StatusConflict, domain.ErrHoldExpired.Error())
	case errors.Is(err, domain.ErrShowtimeElapsed):
		app.errorResponse(w, r, http.StatusConflict, domain.ErrShowtimeElapsed.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		app.errorResponse(w, r, http.StatusPaymentRequired, domain.ErrInsufficientFunds.Error())
	case errors.Is(err, domain.ErrInvalidCoupon):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domain.ErrInvalidCoupon.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domain.ErrInvalidAmount.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}
