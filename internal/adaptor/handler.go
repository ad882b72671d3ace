package adaptor

import (
	"errors"
	"net/http"

	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/usecase"
	"cafeteria-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Reservation *ReservationHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Admin:       NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps service errors to HTTP responses. The sentinels are
// the contract with the usecase layer; anything unmatched is a 500 with the
// detail kept out of the response body.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrSeatNotFound),
		errors.Is(err, usecase.ErrTimeslotNotFound),
		errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrBookingLimit):
		log.Warn(operation+" failed - booking limit", zap.Error(err))
		utils.ResponseBadRequest(w, "You have reached the maximum booking limit of 2 seats. Please cancel an existing reservation to book a new one.", nil)

	case errors.Is(err, usecase.ErrNoManager),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrDateOutOfRange):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSeatTaken),
		errors.Is(err, repository.ErrDuplicateReservation):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, "This seat is already booked for this timeslot. Please select a different seat or timeslot.")

	case errors.Is(err, repository.ErrInsufficientBalance):
		log.Warn(operation+" failed - insufficient balance", zap.Error(err))
		utils.ResponsePaymentRequired(w, "Insufficient manager balance")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
