package ports

import (
	"context"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// TimeClockRepository defines persistence operations for attendance records.
type TimeClockRepository interface {
	Create(ctx context.Context, rec *domain.TimeClock) (*domain.TimeClock, error)
	// FindOpenSince returns the user's record with clock-out unset and
	// clock-in at or after since, or domain.ErrNoActiveClockIn.
	FindOpenSince(ctx context.Context, userID string, since time.Time) (*domain.TimeClock, error)
	// Close sets the clock-out timestamp and the computed total hours.
	Close(ctx context.Context, id string, clockOut time.Time, totalHours float64) (*domain.TimeClock, error)
}

// TimeClockService drives the per-user daily attendance state machine.
type TimeClockService interface {
	// ClockIn fails with domain.ErrAlreadyClockedIn when an open record
	// exists for the current calendar day.
	ClockIn(ctx context.Context, userID string) (*domain.TimeClock, error)
	// ClockOut fails with domain.ErrNoActiveClockIn when no record is open.
	ClockOut(ctx context.Context, userID string) (*domain.TimeClock, error)
}
