package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rentomobile/internal/calendar"
	"rentomobile/internal/db"
)

const BookingsKey = "bookings"

// ErrCorrupt wraps decode failures of stored entries.
var ErrCorrupt = errors.New("stored entry is corrupt")

type BookingRepository struct {
	store Store
}

func NewBookingRepository(store Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// List returns the stored bookings in insertion order. A missing entry is
// an empty list.
func (r *BookingRepository) List(ctx context.Context) ([]db.Booking, error) {
	raw, err := r.store.Get(ctx, BookingsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []db.Booking{}, nil
		}
		return nil, err
	}
	return decodeBookings(raw)
}

// Append runs build against the current collection and stores the result
// at the end of it, all in one atomic update of the "bookings" entry.
func (r *BookingRepository) Append(ctx context.Context, build func(existing []db.Booking) (db.Booking, error)) (db.Booking, error) {
	var created db.Booking
	err := r.store.Update(ctx, BookingsKey, func(current []byte) ([]byte, error) {
		bookings, err := decodeBookings(current)
		if err != nil {
			return nil, err
		}
		b, err := build(bookings)
		if err != nil {
			return nil, err
		}
		created = b
		return json.Marshal(append(bookings, b))
	})
	if err != nil {
		return db.Booking{}, err
	}
	return created, nil
}

// RefreshUpcoming rewrites the stored isUpcoming flags against today and
// returns how many bookings changed.
func (r *BookingRepository) RefreshUpcoming(ctx context.Context, today calendar.Date) (int, error) {
	changed := 0
	err := r.store.Update(ctx, BookingsKey, func(current []byte) ([]byte, error) {
		bookings, err := decodeBookings(current)
		if err != nil {
			return nil, err
		}
		for i := range bookings {
			upcoming := bookings[i].Upcoming(today)
			if bookings[i].IsUpcoming != upcoming {
				bookings[i].IsUpcoming = upcoming
				changed++
			}
		}
		return json.Marshal(bookings)
	})
	if err != nil {
		return 0, fmt.Errorf("error refreshing upcoming bookings: %w", err)
	}
	return changed, nil
}

func decodeBookings(raw []byte) ([]db.Booking, error) {
	if len(raw) == 0 {
		return []db.Booking{}, nil
	}
	var bookings []db.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, BookingsKey, err)
	}
	if bookings == nil {
		bookings = []db.Booking{}
	}
	return bookings, nil
}
