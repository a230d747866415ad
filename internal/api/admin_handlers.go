package api

import (
	"net/http"

	"go.uber.org/zap"

	"rentomobile/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
	logger  *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, logger: logger}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	vehicleType := r.URL.Query().Get("vehicle_type")
	bookings, err := h.Service.ListBookings(r.Context(), status, vehicleType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(bookings),
		"bookings": bookings,
	})
}

func (h *AdminHandler) RefreshUpcoming(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.RefreshUpcoming(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"changed": changed})
}
