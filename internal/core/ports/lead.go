package ports

import (
	"context"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// ListLeadsFilter carries the allow-listed query parameters for listing leads.
type ListLeadsFilter struct {
	Channel string // optional: "email" or "sms"
	Status  string // optional: lead status
	Page    int    // 1-based
	Limit   int    // rows per page (capped by the service)
}

// CreateLeadInput carries all data needed to record an inbound lead.
type CreateLeadInput struct {
	CustomerName    string
	Email           string
	Phone           string
	Channel         domain.LeadChannel
	Subject         string
	Message         string
	AssignedTo      string
	VehicleInterest string
	Source          string
}

// UpdateLeadInput updates the provided fields only; nil pointers are left
// untouched in storage.
type UpdateLeadInput struct {
	CustomerName    *string
	Email           *string
	Phone           *string
	Status          *domain.LeadStatus
	Subject         *string
	Message         *string
	AssignedTo      *string
	VehicleInterest *string
	Source          *string
}

// LeadRepository defines persistence operations for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	// List returns a page of leads newest-first and the total count.
	List(ctx context.Context, filter ListLeadsFilter) ([]domain.Lead, int64, error)
	// FindRecentByChannel returns the newest leads for one channel.
	FindRecentByChannel(ctx context.Context, channel domain.LeadChannel, limit int) ([]domain.Lead, error)
	Update(ctx context.Context, id string, in UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

// LeadService defines use-case operations for leads.
type LeadService interface {
	List(ctx context.Context, filter ListLeadsFilter) ([]domain.Lead, int64, error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	Create(ctx context.Context, in CreateLeadInput) (*domain.Lead, error)
	Update(ctx context.Context, id string, in UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
}
