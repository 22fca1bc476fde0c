package ports

import (
	"context"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// ListTasksFilter carries the allow-listed query parameters for listing tasks.
type ListTasksFilter struct {
	Status string // optional: task status
	Page   int    // 1-based
	Limit  int    // rows per page (capped by the service)
}

// CreateTaskInput carries all data needed to create a task. CreatedBy is
// always the acting user.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssignedTo  string
	DueDate     time.Time
	RelatedLead string
}

// UpdateTaskInput updates the provided fields only. CompletedAt is stamped by
// the service when the incoming status is "completed"; it is never cleared.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssignedTo  *string
	DueDate     *time.Time
	RelatedLead *string
	CompletedAt *time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// List returns a page of tasks ordered by due date and the total count.
	List(ctx context.Context, filter ListTasksFilter) ([]domain.Task, int64, error)
	// FindOpenByDue returns pending and in-progress tasks ordered by due date.
	FindOpenByDue(ctx context.Context, limit int) ([]domain.Task, error)
	// FindOverdue returns incomplete tasks whose due date is before now.
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.Task, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	List(ctx context.Context, filter ListTasksFilter) ([]domain.Task, int64, error)
	Create(ctx context.Context, in CreateTaskInput, actingUser *domain.User) (*domain.Task, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
