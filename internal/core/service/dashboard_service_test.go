package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

func TestDashboardService_Summary(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tasks := &stubTaskRepo{
		findOpenFn: func(ctx context.Context, limit int) ([]domain.Task, error) {
			if limit != 10 {
				t.Fatalf("expected pending task limit 10, got %d", limit)
			}
			return []domain.Task{{ID: "t1"}}, nil
		},
		findOverdueFn: func(ctx context.Context, at time.Time, limit int) ([]domain.Task, error) {
			if !at.Equal(now) {
				t.Fatalf("overdue cutoff must be now, got %v", at)
			}
			return []domain.Task{{ID: "t2"}}, nil
		},
	}
	activities := &stubActivityRepo{
		findUpcomingFn: func(ctx context.Context, from, to time.Time, limit int) ([]domain.Activity, error) {
			if !from.Equal(today) || !to.Equal(today.Add(7*24*time.Hour)) {
				t.Fatalf("unexpected window: %v .. %v", from, to)
			}
			if limit != 20 {
				t.Fatalf("expected activity limit 20, got %d", limit)
			}
			return []domain.Activity{{ID: "a1"}}, nil
		},
	}
	leads := &stubLeadRepo{
		findRecentFn: func(ctx context.Context, channel domain.LeadChannel, limit int) ([]domain.Lead, error) {
			if limit != 15 {
				t.Fatalf("expected lead limit 15, got %d", limit)
			}
			switch channel {
			case domain.ChannelEmail:
				return []domain.Lead{{ID: "l1"}, {ID: "l2"}}, nil
			case domain.ChannelSMS:
				return []domain.Lead{{ID: "l3"}}, nil
			}
			t.Fatalf("unexpected channel: %s", channel)
			return nil, nil
		},
	}
	timeclocks := &stubTimeClockRepo{
		findOpenSinceFn: func(ctx context.Context, userID string, since time.Time) (*domain.TimeClock, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user: %s", userID)
			}
			return &domain.TimeClock{ID: "tc1", UserID: userID}, nil
		},
	}

	svc := NewDashboardService(tasks, activities, leads, timeclocks)
	svc.now = fixedClock(now)

	summary, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.PendingTasks) != 1 || len(summary.OverdueTasks) != 1 {
		t.Fatalf("unexpected task lists: %+v", summary)
	}
	if len(summary.UpcomingActivities) != 1 {
		t.Fatalf("unexpected activities: %+v", summary.UpcomingActivities)
	}
	if len(summary.Leads.Emails) != 2 || len(summary.Leads.SMS) != 1 {
		t.Fatalf("unexpected leads: %+v", summary.Leads)
	}
	if summary.TimeClock == nil || summary.TimeClock.ID != "tc1" {
		t.Fatalf("unexpected time clock: %+v", summary.TimeClock)
	}
}

func TestDashboardService_Summary_NoOpenClockIn(t *testing.T) {
	tasks := &stubTaskRepo{}
	activities := &stubActivityRepo{}
	leads := &stubLeadRepo{}
	timeclocks := &stubTimeClockRepo{
		findOpenSinceFn: func(ctx context.Context, userID string, since time.Time) (*domain.TimeClock, error) {
			return nil, domain.ErrNoActiveClockIn
		},
	}

	svc := NewDashboardService(tasks, activities, leads, timeclocks)

	summary, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("an empty time clock must not fail the summary: %v", err)
	}
	if summary.TimeClock != nil {
		t.Fatalf("expected nil time clock, got %+v", summary.TimeClock)
	}
}

func TestDashboardService_Summary_PropagatesErrors(t *testing.T) {
	boom := errors.New("mongo timeout")
	tasks := &stubTaskRepo{
		findOpenFn: func(ctx context.Context, limit int) ([]domain.Task, error) {
			return nil, boom
		},
	}
	svc := NewDashboardService(tasks, &stubActivityRepo{}, &stubLeadRepo{}, &stubTimeClockRepo{
		findOpenSinceFn: func(ctx context.Context, userID string, since time.Time) (*domain.TimeClock, error) {
			return nil, domain.ErrNoActiveClockIn
		},
	})

	if _, err := svc.Summary(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Fatalf("expected query error to propagate, got %v", err)
	}
}