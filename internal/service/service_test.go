package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"rentomobile/internal/catalog"
	"rentomobile/internal/db"
	"rentomobile/internal/repository"
)

type fakeSender struct {
	calls   []db.Booking
	profile db.UserProfile
	channel string
	err     error
}

func (f *fakeSender) SendBookingConfirmation(_ context.Context, b db.Booking, p db.UserProfile) (string, error) {
	f.calls = append(f.calls, b)
	f.profile = p
	return f.channel, f.err
}

// failingStore rejects every atomic update.
type failingStore struct {
	*repository.MemoryStore
}

func (s failingStore) Update(context.Context, string, repository.UpdateFunc) error {
	return errors.New("disk full")
}

type testEnv struct {
	now        time.Time
	store      repository.Store
	sender     *fakeSender
	profiles   *ProfileService
	listings   *ListingService
	selections *SelectionService
	bookings   *BookingService
	jobs       *JobService
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	return newTestEnvWithStore(t, now, repository.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, now time.Time, store repository.Store) *testEnv {
	t.Helper()
	env := &testEnv{now: now, store: store, sender: &fakeSender{}}
	clock := Clock{Now: func() time.Time { return env.now }, Location: time.UTC}
	logger := zap.NewNop()

	bookingRepo := repository.NewBookingRepository(store)
	env.profiles = NewProfileService(repository.NewProfileRepository(store), clock, logger)
	env.listings = NewListingService(catalog.Builtin(), env.profiles)
	env.selections = NewSelectionService(repository.NewSelectionRepository(store, 0), clock, logger)
	env.bookings = NewBookingService(bookingRepo, env.selections, env.profiles, env.sender, clock, "", logger)
	env.jobs = NewJobService(bookingRepo, clock, logger)
	return env
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
}
