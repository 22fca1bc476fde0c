package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

// TimeClockService drives the per-user daily attendance state machine:
// NotClockedIn -> ClockedIn -> ClockedOut. The one-open-record-per-day
// invariant is enforced by check-then-write; a concurrent pair of clock-ins
// can in principle both pass the check, which is an accepted limitation.
type TimeClockService struct {
	repo   ports.TimeClockRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTimeClockService(repo ports.TimeClockRepository, logger zerolog.Logger) *TimeClockService {
	return &TimeClockService{repo: repo, logger: logger, now: time.Now}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *TimeClockService) ClockIn(ctx context.Context, userID string) (*domain.TimeClock, error) {
	now := s.now()

	existing, err := s.repo.FindOpenSince(ctx, userID, startOfDay(now))
	if err != nil && !errors.Is(err, domain.ErrNoActiveClockIn) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyClockedIn
	}

	rec, err := s.repo.Create(ctx, &domain.TimeClock{UserID: userID, ClockIn: now})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Time("clock_in", rec.ClockIn).Msg("clocked in")
	return rec, nil
}

func (s *TimeClockService) ClockOut(ctx context.Context, userID string) (*domain.TimeClock, error) {
	now := s.now()

	open, err := s.repo.FindOpenSince(ctx, userID, startOfDay(now))
	if err != nil {
		return nil, err
	}

	total := domain.TotalHoursBetween(open.ClockIn, now)
	rec, err := s.repo.Close(ctx, open.ID, now, total)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Float64("total_hours", total).Msg("clocked out")
	return rec, nil
}
