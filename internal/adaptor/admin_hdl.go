package adaptor

import (
	"net/http"

	"cafeteria-booking/internal/usecase"
	"cafeteria-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/admin/dashboard (admin key)
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// Stats handles GET /api/admin/stats (admin key)
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get statistics")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// Bookings handles GET /api/admin/bookings (admin key)
func (h *AdminHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.Bookings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Reset handles POST /api/admin/reset (admin key)
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reset(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "reset system")
		return
	}

	utils.ResponseSuccess(w, "System reset successful", result)
}
