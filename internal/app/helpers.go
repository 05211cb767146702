package app

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinema-booking-engine/internal/jsonutil"
	"github.com/metinatakli/cinema-booking-engine/internal/middleware"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

// contextGetUserId must only be called behind middleware.Authenticate.
func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		panic("missing user id in request context")
	}

	return userId
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger := app.logger.With("request_id", chimiddleware.GetReqID(r.Context()))

	if userId, ok := middleware.UserIDFromContext(r.Context()); ok {
		logger = logger.With("user_id", userId)
	}

	return logger
}
