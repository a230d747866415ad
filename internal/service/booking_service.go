package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentomobile/internal/calendar"
	"rentomobile/internal/catalog"
	"rentomobile/internal/db"
	"rentomobile/internal/entities"
	"rentomobile/internal/metrics"
	"rentomobile/internal/repository"
)

var (
	ErrIncompleteRange = errors.New("please select a date range")
	ErrSaveBooking     = errors.New("failed to save booking, please try again")
)

// ConfirmationSender relays a new booking to the business.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, b db.Booking, profile db.UserProfile) (string, error)
}

// NewBookingRecord builds the persisted record for item over r. It fails
// with ErrIncompleteRange unless both bounds are set.
func NewBookingRecord(item catalog.Item, r calendar.Range, now time.Time, id string) (db.Booking, error) {
	if !r.Complete() {
		return db.Booking{}, ErrIncompleteRange
	}
	if err := r.Validate(); err != nil {
		return db.Booking{}, fmt.Errorf("%w: %v", ErrIncompleteRange, err)
	}
	return db.Booking{
		ID:          id,
		VehicleName: item.Name,
		VehicleType: string(item.Category),
		Price:       item.PriceValue,
		StartDate:   r.Start.Time(),
		EndDate:     r.End.Time(),
		DateRange:   r.Label(),
		Status:      db.StatusConfirmed,
		Image:       item.PrimaryImage(),
		IsUpcoming:  true,
		CreatedAt:   now.UTC(),
	}, nil
}

// bookingID derives the id from now in Unix milliseconds and appends a random
// suffix while it collides with an existing booking.
func bookingID(now time.Time, existing []db.Booking) string {
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.ID] = struct{}{}
	}
	base := strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = base + "-" + uuid.NewString()[:8]
	}
}

type BookingService struct {
	bookings   *repository.BookingRepository
	selections *SelectionService
	profiles   *ProfileService
	sender     ConfirmationSender
	clock      Clock
	phone      string
	logger     *zap.Logger
}

func NewBookingService(
	bookings *repository.BookingRepository,
	selections *SelectionService,
	profiles *ProfileService,
	sender ConfirmationSender,
	clock Clock,
	whatsAppPhone string,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		selections: selections,
		profiles:   profiles,
		sender:     sender,
		clock:      clock,
		phone:      whatsAppPhone,
		logger:     logger,
	}
}

// Confirm books item over the session's selected range. The booking is
// persisted before the confirmation hand-off; a failed hand-off is logged
// and does not undo it.
func (s *BookingService) Confirm(ctx context.Context, session string, item catalog.Item) (*entities.BookingResponse, error) {
	rng, err := s.selections.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if !rng.Complete() {
		metrics.IncBookingRejected("incomplete_range")
		return nil, ErrIncompleteRange
	}

	now := s.clock.now()
	booking, err := s.bookings.Append(ctx, func(existing []db.Booking) (db.Booking, error) {
		return NewBookingRecord(item, rng, now, bookingID(now, existing))
	})
	if err != nil {
		if errors.Is(err, ErrIncompleteRange) {
			metrics.IncBookingRejected("incomplete_range")
			return nil, err
		}
		metrics.IncBookingRejected("write_failed")
		s.logger.Error("error saving booking", zap.String("item_id", item.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSaveBooking, err)
	}
	metrics.IncBookingCreated(string(item.Category))
	s.logger.Info("booking confirmed",
		zap.String("booking_id", booking.ID),
		zap.String("item_id", item.ID),
		zap.String("date_range", booking.DateRange))

	if session != "" {
		if err := s.selections.Reset(ctx, session); err != nil {
			s.logger.Warn("error clearing selection", zap.String("session", session), zap.Error(err))
		}
	}

	resp := &entities.BookingResponse{
		Booking:      booking,
		Confirmation: NewConfirmation(s.phone, booking),
		Message:      "Booking confirmed",
	}

	if s.sender != nil {
		profile, err := s.profiles.Get(ctx)
		if err != nil {
			s.logger.Warn("error loading profile for hand-off", zap.Error(err))
		}
		channel, err := s.sender.SendBookingConfirmation(ctx, booking, profile)
		if err != nil {
			s.logger.Warn("booking saved but confirmation relay failed",
				zap.String("booking_id", booking.ID), zap.Error(err))
		}
		resp.Channel = channel
	}
	return resp, nil
}

// List returns every booking with isUpcoming recomputed for today, split
// into upcoming and past in stored order.
func (s *BookingService) List(ctx context.Context) (*entities.BookingsList, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := &entities.BookingsList{
		Total:    len(all),
		Upcoming: []db.Booking{},
		Past:     []db.Booking{},
	}
	for _, b := range all {
		if b.IsUpcoming {
			out.Upcoming = append(out.Upcoming, b)
		} else {
			out.Past = append(out.Past, b)
		}
	}
	return out, nil
}

// All returns the stored bookings with isUpcoming recomputed. Unreadable
// data is treated as no bookings.
func (s *BookingService) All(ctx context.Context) ([]db.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCorrupt) {
			s.logger.Warn("stored bookings are unreadable, showing none", zap.Error(err))
			return []db.Booking{}, nil
		}
		return nil, fmt.Errorf("error loading bookings: %w", err)
	}
	today := s.clock.Today()
	for i := range bookings {
		bookings[i].IsUpcoming = bookings[i].Upcoming(today)
	}
	return bookings, nil
}
