package ports

import (
	"context"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// DashboardLeads groups the most recent leads per inbound channel.
type DashboardLeads struct {
	Emails []domain.Lead `json:"emails"`
	SMS    []domain.Lead `json:"sms"`
}

// DashboardSummary is the assembled read-model for the dashboard view. The
// underlying queries run independently, so an item may appear in two lists if
// its state changes mid-aggregation.
type DashboardSummary struct {
	PendingTasks       []domain.Task     `json:"pendingTasks"`
	OverdueTasks       []domain.Task     `json:"overdueTasks"`
	UpcomingActivities []domain.Activity `json:"upcomingActivities"`
	Leads              DashboardLeads    `json:"leads"`
	TimeClock          *domain.TimeClock `json:"timeClock"`
}

// DashboardService composes read-only queries for the summary view.
type DashboardService interface {
	Summary(ctx context.Context, userID string) (*DashboardSummary, error)
}
