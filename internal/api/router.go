package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentomobile/internal/auth"
)

func NewRouter(user *UserHandler, admin *AdminHandler, adminToken string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public endpoints
	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/categories", user.ListCategories).Methods("GET")
	public.HandleFunc("/listings", user.ListListings).Methods("GET")
	public.HandleFunc("/listings/{id}", user.GetListing).Methods("GET")
	public.HandleFunc("/calendar", user.GetCalendar).Methods("GET")
	public.HandleFunc("/selections/{session}", user.GetSelection).Methods("GET")
	public.HandleFunc("/selections/{session}", user.ResetSelection).Methods("DELETE")
	public.HandleFunc("/selections/{session}/picks", user.PickDate).Methods("POST")
	public.HandleFunc("/bookings", user.CreateBooking).Methods("POST")
	public.HandleFunc("/bookings", user.ListBookings).Methods("GET")
	public.HandleFunc("/profile", user.GetProfile).Methods("GET")
	public.HandleFunc("/profile", user.UpdateProfile).Methods("PUT")
	public.HandleFunc("/notifications", user.GetNotifications).Methods("GET")
	public.HandleFunc("/privacy-policy", user.GetPrivacyPolicy).Methods("GET")

	// Ops endpoints (protected)
	ops := r.PathPrefix("/admin").Subrouter()
	ops.Use(auth.AdminTokenMiddleware(adminToken))
	ops.HandleFunc("/bookings", admin.ListBookings).Methods("GET")
	ops.HandleFunc("/bookings/refresh", admin.RefreshUpcoming).Methods("POST")

	return r
}
