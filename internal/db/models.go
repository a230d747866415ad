package db

import (
	"strings"
	"time"

	"rentomobile/internal/calendar"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking is one element of the persisted "bookings" entry. Field names
// follow the JSON written by the mobile client.
type Booking struct {
	ID          string        `json:"id"`
	VehicleName string        `json:"vehicleName"`
	VehicleType string        `json:"vehicleType,omitempty"`
	Price       float64       `json:"price,omitempty"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	DateRange   string        `json:"dateRange"`
	Status      BookingStatus `json:"status"`
	Image       string        `json:"image"`
	IsUpcoming  bool          `json:"isUpcoming"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Upcoming reports whether the booking ends today or later.
func (b Booking) Upcoming(today calendar.Date) bool {
	return !calendar.DateOf(b.EndDate.UTC()).Before(today)
}

// UserProfile is the persisted "userProfile" entry.
type UserProfile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	MemberSince   string `json:"memberSince"`
	Avatar        string `json:"avatar,omitempty"`
}

// Complete reports whether the fields needed to book are filled in.
func (p UserProfile) Complete() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Email) != ""
}

const (
	DefaultPaymentMethod = "Cash Payment"
	DefaultAvatar        = "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=200&h=200&fit=crop&crop=face"
)

// DefaultProfile is shown until the user saves one.
func DefaultProfile() UserProfile {
	return UserProfile{
		PaymentMethod: DefaultPaymentMethod,
		Avatar:        DefaultAvatar,
	}
}
