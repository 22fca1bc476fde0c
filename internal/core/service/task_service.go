package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

// TaskService implements CRUD use-cases over tasks.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

// Create persists a task. The creator is always the acting user; status and
// priority fall back to their defaults when unset.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput, actingUser *domain.User) (*domain.Task, error) {
	status := in.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actingUser.ID,
		DueDate:     in.DueDate,
		RelatedLead: in.RelatedLead,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("assigned_to", created.AssignedTo).Msg("task created")
	return created, nil
}

// Update applies the provided fields. When the incoming status is "completed"
// a completion timestamp is stamped; the stamp is one-way and a later status
// change does not clear it.
func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	if in.Status != nil && *in.Status == domain.TaskStatusCompleted {
		now := time.Now().UTC()
		in.CompletedAt = &now
	}

	return s.repo.Update(ctx, id, in)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}
