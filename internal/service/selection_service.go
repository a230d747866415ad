package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"rentomobile/internal/calendar"
	"rentomobile/internal/metrics"
	"rentomobile/internal/repository"
)

var ErrSessionRequired = errors.New("session is required")

// CalendarView is one rendered month with the session's selection applied.
type CalendarView struct {
	Month     calendar.Month
	Today     calendar.Date
	Cells     []calendar.Cell
	Selection calendar.Range
}

// SelectionService drives the date-range selector for each client session.
type SelectionService struct {
	repo   *repository.SelectionRepository
	clock  Clock
	logger *zap.Logger
}

func NewSelectionService(repo *repository.SelectionRepository, clock Clock, logger *zap.Logger) *SelectionService {
	return &SelectionService{repo: repo, clock: clock, logger: logger}
}

// Get returns the session's current range. Unreadable state counts as empty.
func (s *SelectionService) Get(ctx context.Context, session string) (calendar.Range, error) {
	if session == "" {
		return calendar.Range{}, nil
	}
	rng, err := s.repo.Get(ctx, session)
	if err != nil {
		if errors.Is(err, repository.ErrCorrupt) {
			s.logger.Warn("dropping unreadable selection", zap.String("session", session), zap.Error(err))
			return calendar.Range{}, nil
		}
		return calendar.Range{}, err
	}
	return rng, nil
}

// Month renders m for session. A zero month means the current one.
func (s *SelectionService) Month(ctx context.Context, session string, m calendar.Month) (CalendarView, error) {
	today := s.clock.Today()
	if m == (calendar.Month{}) {
		m = calendar.MonthOf(today)
	}
	rng, err := s.Get(ctx, session)
	if err != nil {
		return CalendarView{}, err
	}
	sel := calendar.NewSelector(today, rng)
	return CalendarView{
		Month:     m,
		Today:     today,
		Cells:     sel.Grid(m),
		Selection: sel.Range(),
	}, nil
}

// Pick applies one date pick. accepted is false when d is disabled and the
// range was left unchanged.
func (s *SelectionService) Pick(ctx context.Context, session string, d calendar.Date) (calendar.Range, bool, error) {
	if session == "" {
		return calendar.Range{}, false, ErrSessionRequired
	}
	rng, err := s.Get(ctx, session)
	if err != nil {
		return calendar.Range{}, false, err
	}

	sel := calendar.NewSelector(s.clock.Today(), rng)
	if !sel.Pick(d) {
		metrics.IncDatePick("ignored")
		return sel.Range(), false, nil
	}
	metrics.IncDatePick("accepted")

	if err := s.repo.Save(ctx, session, sel.Range()); err != nil {
		return calendar.Range{}, false, err
	}
	return sel.Range(), true, nil
}

func (s *SelectionService) Reset(ctx context.Context, session string) error {
	if session == "" {
		return ErrSessionRequired
	}
	return s.repo.Clear(ctx, session)
}
