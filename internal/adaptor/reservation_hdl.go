package adaptor

import (
	"encoding/json"
	"net/http"

	"cafeteria-booking/internal/dto/request"
	"cafeteria-booking/internal/usecase"
	"cafeteria-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// ListTimeslots handles GET /api/reservations/timeslots?date=YYYY-MM-DD
func (h *ReservationHandler) ListTimeslots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Missing date parameter", nil)
		return
	}

	timeslots, err := h.service.ListTimeslots(r.Context(), date)
	if err != nil {
		handleServiceError(w, h.log, err, "list timeslots")
		return
	}

	utils.ResponseSuccess(w, "success", timeslots)
}

// ListSeats handles GET /api/reservations/seats?timeslot_id=<uuid>.
// Ownership is only reported when the caller presented a valid session.
func (h *ReservationHandler) ListSeats(w http.ResponseWriter, r *http.Request) {
	timeslotID := r.URL.Query().Get("timeslot_id")
	if timeslotID == "" {
		utils.ResponseBadRequest(w, "Missing timeslot_id parameter", nil)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		userID = uuid.Nil
	}

	seats, err := h.service.ListSeats(r.Context(), timeslotID, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// Create handles POST /api/reservations (protected)
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// ListMine handles GET /api/reservations/mine (protected)
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservations, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list my reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// Cancel handles DELETE /api/reservations/{id} (protected)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	if err := h.service.Cancel(r.Context(), userID, reservationID); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled", nil)
}

// Verify handles GET /api/reservations/verify
func (h *ReservationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Verify(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "verify system status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}
