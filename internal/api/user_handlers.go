package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"rentomobile/internal/calendar"
	"rentomobile/internal/catalog"
	"rentomobile/internal/db"
	"rentomobile/internal/entities"
	httperrors "rentomobile/internal/errors"
	"rentomobile/internal/service"
)

type UserHandler struct {
	Listings   *service.ListingService
	Selections *service.SelectionService
	Bookings   *service.BookingService
	Profiles   *service.ProfileService
	Content    *service.ContentService
	logger     *zap.Logger
}

func NewUserHandler(
	listings *service.ListingService,
	selections *service.SelectionService,
	bookings *service.BookingService,
	profiles *service.ProfileService,
	content *service.ContentService,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		Listings:   listings,
		Selections: selections,
		Bookings:   bookings,
		Profiles:   profiles,
		Content:    content,
		logger:     logger,
	}
}

func (h *UserHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.Listings.Categories(),
		"default":    catalog.DefaultCategory(),
	})
}

func (h *UserHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, category, err := h.Listings.List(q.Get("category"), q.Get("q"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"total":    len(items),
		"items":    items,
	})
}

func (h *UserHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	item, err := h.Listings.Details(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *UserHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var month calendar.Month
	if s := q.Get("month"); s != "" {
		m, err := calendar.ParseMonth(s)
		if err != nil {
			writeError(w, h.logger, httperrors.ErrBadRequest("month must be YYYY-MM"))
			return
		}
		month = m
	}
	view, err := h.Selections.Month(r.Context(), q.Get("session"), month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarResponse(view))
}

func (h *UserHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	rng, err := h.Selections.Get(r.Context(), mux.Vars(r)["session"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toSelectionResponse(rng))
}

func (h *UserHandler) PickDate(w http.ResponseWriter, r *http.Request) {
	var req entities.PickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, httperrors.ErrBadRequest("Invalid request"))
		return
	}
	d, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, h.logger, httperrors.ErrBadRequest("date must be YYYY-MM-DD"))
		return
	}
	rng, accepted, err := h.Selections.Pick(r.Context(), mux.Vars(r)["session"], d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp := toSelectionResponse(rng)
	resp.Accepted = &accepted
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.Selections.Reset(r.Context(), mux.Vars(r)["session"]); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, httperrors.ErrBadRequest("Invalid request"))
		return
	}
	if req.Session == "" {
		writeError(w, h.logger, service.ErrSessionRequired)
		return
	}
	item, err := h.Listings.Resolve(req.ItemID, req.Item)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp, err := h.Bookings.Confirm(r.Context(), req.Session, item)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Bookings.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req db.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, httperrors.ErrBadRequest("Invalid request"))
		return
	}
	p, err := h.Profiles.Save(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Content.Notifications(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetPrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Content.PrivacyPolicy())
}
