package wire

import (
	"net/http"

	"cafeteria-booking/internal/adaptor"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/usecase"
	"cafeteria-booking/pkg/middleware"
	"cafeteria-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and routes into a ready router.
func Wiring(repo *repository.Repository, config *utils.Config, clock clockwork.Clock, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, clock, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, clock, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	clock clockwork.Clock,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, clock, logger)
	wireReservation(r, handler.Reservation, repo, clock, logger)
	wireAdmin(r, handler.Admin, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
