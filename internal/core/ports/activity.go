package ports

import (
	"context"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// ListActivitiesFilter carries the allow-listed query parameters for listing
// activities. From/To bound the scheduled date; zero values mean unbounded.
type ListActivitiesFilter struct {
	Type  string
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}

// CreateActivityInput carries all data needed to schedule an activity.
// CreatedBy is always the acting user; AssignedTo defaults to the acting user
// when empty.
type CreateActivityInput struct {
	Title       string
	Type        domain.ActivityType
	Description string
	ScheduledAt time.Time
	EndAt       *time.Time
	AssignedTo  string
	RelatedLead string
	Location    string
}

// UpdateActivityInput updates the provided fields only.
type UpdateActivityInput struct {
	Title       *string
	Type        *domain.ActivityType
	Description *string
	ScheduledAt *time.Time
	EndAt       *time.Time
	AssignedTo  *string
	RelatedLead *string
	Location    *string
	IsCompleted *bool
}

// ActivityRepository defines persistence operations for activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	// List returns a page of activities ordered by scheduled date and the total count.
	List(ctx context.Context, filter ListActivitiesFilter) ([]domain.Activity, int64, error)
	// FindUpcoming returns incomplete activities scheduled within [from, to].
	FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]domain.Activity, error)
	Update(ctx context.Context, id string, in UpdateActivityInput) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService defines use-case operations for activities.
type ActivityService interface {
	List(ctx context.Context, filter ListActivitiesFilter) ([]domain.Activity, int64, error)
	Create(ctx context.Context, in CreateActivityInput, actingUser *domain.User) (*domain.Activity, error)
	Update(ctx context.Context, id string, in UpdateActivityInput) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}
