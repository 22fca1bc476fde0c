package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type stubActivityRepo struct {
	createFn       func(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	listFn         func(ctx context.Context, filter ports.ListActivitiesFilter) ([]domain.Activity, int64, error)
	findUpcomingFn func(ctx context.Context, from, to time.Time, limit int) ([]domain.Activity, error)
	updateFn       func(ctx context.Context, id string, in ports.UpdateActivityInput) (*domain.Activity, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubActivityRepo) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	return s.createFn(ctx, activity)
}

func (s *stubActivityRepo) List(ctx context.Context, filter ports.ListActivitiesFilter) ([]domain.Activity, int64, error) {
	return s.listFn(ctx, filter)
}

func (s *stubActivityRepo) FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]domain.Activity, error) {
	if s.findUpcomingFn != nil {
		return s.findUpcomingFn(ctx, from, to, limit)
	}
	return nil, nil
}

func (s *stubActivityRepo) Update(ctx context.Context, id string, in ports.UpdateActivityInput) (*domain.Activity, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubActivityRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestActivityService_Create_AssigneeDefaultsToActor(t *testing.T) {
	actor := &domain.User{ID: "64fd1c9aa2b3c4d5e6f70001"}
	repo := &stubActivityRepo{
		createFn: func(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
			if activity.AssignedTo != actor.ID {
				t.Fatalf("assignee must default to the acting user, got %s", activity.AssignedTo)
			}
			if activity.CreatedBy != actor.ID {
				t.Fatalf("creator must be the acting user, got %s", activity.CreatedBy)
			}
			return activity, nil
		},
	}
	svc := NewActivityService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateActivityInput{
		Title:       "Test drive with Maria",
		Type:        domain.ActivityTestDrive,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestActivityService_Create_ExplicitAssigneeKept(t *testing.T) {
	actor := &domain.User{ID: "64fd1c9aa2b3c4d5e6f70001"}
	repo := &stubActivityRepo{
		createFn: func(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
			if activity.AssignedTo != "64fd1c9aa2b3c4d5e6f70002" {
				t.Fatalf("explicit assignee must be kept, got %s", activity.AssignedTo)
			}
			return activity, nil
		},
	}
	svc := NewActivityService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateActivityInput{
		Title:       "Delivery walkthrough",
		Type:        domain.ActivityDelivery,
		ScheduledAt: time.Now().Add(72 * time.Hour),
		AssignedTo:  "64fd1c9aa2b3c4d5e6f70002",
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}
