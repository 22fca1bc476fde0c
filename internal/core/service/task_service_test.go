package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type stubTaskRepo struct {
	createFn      func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	listFn        func(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, int64, error)
	findOpenFn    func(ctx context.Context, limit int) ([]domain.Task, error)
	findOverdueFn func(ctx context.Context, now time.Time, limit int) ([]domain.Task, error)
	updateFn      func(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (s *stubTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return s.createFn(ctx, task)
}

func (s *stubTaskRepo) List(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, int64, error) {
	return s.listFn(ctx, filter)
}

func (s *stubTaskRepo) FindOpenByDue(ctx context.Context, limit int) ([]domain.Task, error) {
	if s.findOpenFn != nil {
		return s.findOpenFn(ctx, limit)
	}
	return nil, nil
}

func (s *stubTaskRepo) FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.Task, error) {
	if s.findOverdueFn != nil {
		return s.findOverdueFn(ctx, now, limit)
	}
	return nil, nil
}

func (s *stubTaskRepo) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubTaskRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestTaskService_Create_Defaults(t *testing.T) {
	actor := &domain.User{ID: "64fd1c9aa2b3c4d5e6f70001"}
	repo := &stubTaskRepo{
		createFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			if task.Status != domain.TaskStatusPending {
				t.Fatalf("expected default status pending, got %s", task.Status)
			}
			if task.Priority != domain.PriorityMedium {
				t.Fatalf("expected default priority medium, got %s", task.Priority)
			}
			if task.CreatedBy != actor.ID {
				t.Fatalf("creator must be the acting user, got %s", task.CreatedBy)
			}
			return task, nil
		},
	}
	svc := NewTaskService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:      "Call back the Silverado lead",
		AssignedTo: "64fd1c9aa2b3c4d5e6f70002",
		DueDate:    time.Now().Add(24 * time.Hour),
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestTaskService_Update_StampsCompletedAt(t *testing.T) {
	var captured ports.UpdateTaskInput
	repo := &stubTaskRepo{
		updateFn: func(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
			captured = in
			return &domain.Task{ID: id}, nil
		},
	}
	svc := NewTaskService(repo, zerolog.Nop())

	completed := domain.TaskStatusCompleted
	before := time.Now().UTC()
	if _, err := svc.Update(context.Background(), "t1", ports.UpdateTaskInput{Status: &completed}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if captured.CompletedAt == nil {
		t.Fatalf("completion timestamp was not stamped")
	}
	if captured.CompletedAt.Before(before) || captured.CompletedAt.After(time.Now().UTC()) {
		t.Fatalf("completion timestamp out of range: %v", captured.CompletedAt)
	}
}

func TestTaskService_Update_DoesNotClearCompletedAt(t *testing.T) {
	var captured ports.UpdateTaskInput
	repo := &stubTaskRepo{
		updateFn: func(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
			captured = in
			return &domain.Task{ID: id}, nil
		},
	}
	svc := NewTaskService(repo, zerolog.Nop())

	// Reopening a completed task must leave the historical stamp alone.
	pending := domain.TaskStatusPending
	if _, err := svc.Update(context.Background(), "t1", ports.UpdateTaskInput{Status: &pending}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if captured.CompletedAt != nil {
		t.Fatalf("status change away from completed must not touch the stamp")
	}
}

func TestTaskService_List_NormalizesPagination(t *testing.T) {
	repo := &stubTaskRepo{
		listFn: func(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, int64, error) {
			if filter.Page != 1 {
				t.Fatalf("expected page 1, got %d", filter.Page)
			}
			if filter.Limit != 100 {
				t.Fatalf("expected limit capped at 100, got %d", filter.Limit)
			}
			return nil, 0, nil
		},
	}
	svc := NewTaskService(repo, zerolog.Nop())

	if _, _, err := svc.List(context.Background(), ports.ListTasksFilter{Page: -3, Limit: 5000}); err != nil {
		t.Fatalf("list: %v", err)
	}
}
