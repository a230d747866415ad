package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"rentomobile/internal/calendar"
	"rentomobile/internal/catalog"
	"rentomobile/internal/entities"
	httperrors "rentomobile/internal/errors"
	"rentomobile/internal/service"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// toHTTPError maps service errors onto the status and notice shown to the user.
func toHTTPError(err error) *httperrors.HTTPError {
	var he *httperrors.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, service.ErrIncompleteRange):
		return httperrors.ErrBadRequest("Please select a date range").WithTitle("Select Dates")
	case errors.Is(err, service.ErrProfileRequired):
		return httperrors.NewHTTPError(http.StatusPreconditionRequired,
			"Please complete your profile (name and email) before viewing details.").WithTitle("Profile Required")
	case errors.Is(err, service.ErrInvalidProfile):
		return httperrors.ErrBadRequest("Name and email are required")
	case errors.Is(err, catalog.ErrItemNotFound):
		return httperrors.ErrNotFound("Item not found")
	case errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrSessionRequired):
		return httperrors.ErrBadRequest(err.Error())
	case errors.Is(err, service.ErrSaveBooking):
		return httperrors.ErrInternal("Failed to save booking. Please try again.")
	default:
		return httperrors.ErrInternal("Internal server error")
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	he := toHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, he.Code, he)
}

func datePtr(d calendar.Date) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

func toSelectionResponse(r calendar.Range) entities.SelectionResponse {
	resp := entities.SelectionResponse{
		Start:    datePtr(r.Start),
		End:      datePtr(r.End),
		Complete: r.Complete(),
	}
	if r.Complete() {
		resp.Label = r.Label()
		resp.Days = r.Days()
	}
	return resp
}

func toCalendarResponse(v service.CalendarView) entities.CalendarResponse {
	cells := make([]entities.CalendarCell, len(v.Cells))
	for i, c := range v.Cells {
		cells[i] = entities.CalendarCell{
			Date:     datePtr(c.Date),
			Day:      c.Date.Day,
			Disabled: c.Disabled,
			InRange:  c.InRange,
			Selected: c.Selected,
		}
	}
	return entities.CalendarResponse{
		Month:     v.Month.String(),
		Title:     v.Month.Title(),
		Prev:      v.Month.Prev().String(),
		Next:      v.Month.Next().String(),
		Today:     v.Today.String(),
		Weekdays:  weekdays,
		Cells:     cells,
		Selection: toSelectionResponse(v.Selection),
	}
}
