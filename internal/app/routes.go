package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/middleware"
	"github.com/riandyrn/otelchi"
)

var _ api.ServerInterface = (*Application)(nil)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.RecoverPanic)

	h := api.ServerInterfaceWrapper{
		Handler:          app,
		ErrorHandlerFunc: app.paramErrorResponse,
	}

	r.Get("/healthcheck", h.GetHealth)
	r.Get("/openapi.json", h.GetOpenAPIDocument)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(app.config.JWTSecret))

		r.Delete("/showtimes/{showtimeId}/holds", h.ReleaseSeats)
		r.Get("/users/me/wallet", h.GetWallet)
		r.Get("/users/me/wallet/history", h.GetWalletHistory)

		// Seat claims and money movement are rate limited per user.
		r.Group(func(r chi.Router) {
			r.Use(app.rateLimiter.Limit)

			r.Post("/showtimes/{showtimeId}/holds", h.HoldSeats)
			r.Post("/bookings", h.CreateBooking)
			r.Delete("/users/me/bookings/{bookingId}", h.CancelBooking)
			r.Post("/users/me/wallet/deposits", h.DepositFunds)
		})
	})

	return r
}
