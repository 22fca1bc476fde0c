package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNoActiveClockIn  = errors.New("no active clock-in found for today")
)

// TimeClock is one attendance interval for a user. At most one record per
// user may be open (ClockOut unset) within a calendar day; the invariant is
// enforced by check-then-write, not by the database.
type TimeClock struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	TotalHours float64    `json:"totalHours,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TotalHoursBetween returns the interval length in hours, rounded to two
// decimal places.
func TotalHoursBetween(clockIn, clockOut time.Time) float64 {
	return math.Round(clockOut.Sub(clockIn).Hours()*100) / 100
}
