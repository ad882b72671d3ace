package usecase

import (
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Reservation ReservationService
	Admin       AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, clock clockwork.Clock, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, clock, log),
		Reservation: NewReservationService(repo, clock, log),
		Admin:       NewAdminService(repo, clock, log),
	}
}
