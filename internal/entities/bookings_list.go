package entities

import "rentomobile/internal/db"

type BookingsList struct {
	Total    int          `json:"total"`
	Upcoming []db.Booking `json:"upcoming"`
	Past     []db.Booking `json:"past"`
}

// Confirmation carries the hand-off links for a booking.
type Confirmation struct {
	Message string `json:"message"`
	AppURL  string `json:"appUrl"`
	WebURL  string `json:"webUrl"`
}

type BookingResponse struct {
	Booking      db.Booking   `json:"booking"`
	Confirmation Confirmation `json:"confirmation"`
	// Channel names the server-side relay that delivered the confirmation,
	// empty when only the links were produced.
	Channel string `json:"channel,omitempty"`
	Message string `json:"message"`
}
