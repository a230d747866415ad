package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rentomobile/internal/metrics"
	"rentomobile/internal/repository"
)

type JobService struct {
	repo   *repository.BookingRepository
	clock  Clock
	logger *zap.Logger
}

func NewJobService(repo *repository.BookingRepository, clock Clock, logger *zap.Logger) *JobService {
	return &JobService{repo: repo, clock: clock, logger: logger}
}

// RefreshUpcomingBookings rewrites the stored isUpcoming flags of bookings
// whose end date has passed (or moved back into the future after a clock
// change). Status is never touched.
func (s *JobService) RefreshUpcomingBookings(ctx context.Context) (int, error) {
	today := s.clock.Today()
	s.logger.Debug("cron job: refreshing upcoming flags", zap.String("today", today.String()))

	changed, err := s.repo.RefreshUpcoming(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("cron job: %w", err)
	}
	metrics.AddUpcomingRefreshed(changed)
	if changed > 0 {
		s.logger.Info("cron job: upcoming flags refreshed", zap.Int("changed", changed))
	}
	return changed, nil
}
