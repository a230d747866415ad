package service

import (
	"context"
	"strings"

	"rentomobile/internal/db"
)

type AdminService struct {
	bookings *BookingService
	jobs     *JobService
}

func NewAdminService(bookings *BookingService, jobs *JobService) *AdminService {
	return &AdminService{bookings: bookings, jobs: jobs}
}

// ListBookings returns the stored bookings, optionally narrowed by status
// and vehicle category (both case-insensitive).
func (s *AdminService) ListBookings(ctx context.Context, status, vehicleType string) ([]db.Booking, error) {
	all, err := s.bookings.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]db.Booking, 0, len(all))
	for _, b := range all {
		if status != "" && !strings.EqualFold(string(b.Status), status) {
			continue
		}
		if vehicleType != "" && !strings.EqualFold(b.VehicleType, vehicleType) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *AdminService) RefreshUpcoming(ctx context.Context) (int, error) {
	return s.jobs.RefreshUpcomingBookings(ctx)
}
