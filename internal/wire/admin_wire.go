package wire

import (
	"cafeteria-booking/internal/adaptor"
	"cafeteria-booking/pkg/middleware"
	"cafeteria-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin, log))

		r.Get("/dashboard", adminHandler.Dashboard)
		r.Get("/stats", adminHandler.Stats)
		r.Get("/bookings", adminHandler.Bookings)
		r.Post("/reset", adminHandler.Reset)
	})
}
