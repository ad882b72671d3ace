package wire

import (
	"cafeteria-booking/internal/adaptor"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	clock clockwork.Clock,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/reservations/timeslots", reservationHandler.ListTimeslots)
	r.Get("/api/reservations/verify", reservationHandler.Verify)

	// Seat availability is public but reports ownership for callers with a
	// valid session.
	r.With(middleware.OptionalAuthSession(repo.Session, clock, log)).
		Get("/api/reservations/seats", reservationHandler.ListSeats)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, clock, log))

		r.Post("/api/reservations", reservationHandler.Create)
		r.Get("/api/reservations/mine", reservationHandler.ListMine)
		r.Delete("/api/reservations/{id}", reservationHandler.Cancel)
	})
}
