package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

const (
	dashboardTaskLimit     = 10
	dashboardActivityLimit = 20
	dashboardLeadLimit     = 15
	dashboardWindow        = 7 * 24 * time.Hour
)

// DashboardService assembles the summary read-model from independent queries.
// The queries run concurrently with no cross-query consistency guarantee;
// that race is acceptable for a dashboard view.
type DashboardService struct {
	tasks      ports.TaskRepository
	activities ports.ActivityRepository
	leads      ports.LeadRepository
	timeclocks ports.TimeClockRepository
	now        func() time.Time
}

func NewDashboardService(
	tasks ports.TaskRepository,
	activities ports.ActivityRepository,
	leads ports.LeadRepository,
	timeclocks ports.TimeClockRepository,
) *DashboardService {
	return &DashboardService{
		tasks:      tasks,
		activities: activities,
		leads:      leads,
		timeclocks: timeclocks,
		now:        time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context, userID string) (*ports.DashboardSummary, error) {
	now := s.now()
	today := startOfDay(now)

	summary := &ports.DashboardSummary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.tasks.FindOpenByDue(gctx, dashboardTaskLimit)
		summary.PendingTasks = items
		return err
	})
	g.Go(func() error {
		items, err := s.tasks.FindOverdue(gctx, now, dashboardTaskLimit)
		summary.OverdueTasks = items
		return err
	})
	g.Go(func() error {
		items, err := s.activities.FindUpcoming(gctx, today, today.Add(dashboardWindow), dashboardActivityLimit)
		summary.UpcomingActivities = items
		return err
	})
	g.Go(func() error {
		items, err := s.leads.FindRecentByChannel(gctx, domain.ChannelEmail, dashboardLeadLimit)
		summary.Leads.Emails = items
		return err
	})
	g.Go(func() error {
		items, err := s.leads.FindRecentByChannel(gctx, domain.ChannelSMS, dashboardLeadLimit)
		summary.Leads.SMS = items
		return err
	})
	g.Go(func() error {
		rec, err := s.timeclocks.FindOpenSince(gctx, userID, today)
		if errors.Is(err, domain.ErrNoActiveClockIn) {
			return nil
		}
		summary.TimeClock = rec
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
