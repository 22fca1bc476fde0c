package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// LeadService implements CRUD use-cases over leads.
type LeadService struct {
	repo   ports.LeadRepository
	logger zerolog.Logger
}

func NewLeadService(repo ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{repo: repo, logger: logger}
}

func (s *LeadService) List(ctx context.Context, filter ports.ListLeadsFilter) ([]domain.Lead, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LeadService) Create(ctx context.Context, in ports.CreateLeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		CustomerName:    in.CustomerName,
		Email:           in.Email,
		Phone:           in.Phone,
		Channel:         in.Channel,
		Status:          domain.LeadStatusNew,
		Subject:         in.Subject,
		Message:         in.Message,
		AssignedTo:      in.AssignedTo,
		VehicleInterest: in.VehicleInterest,
		Source:          in.Source,
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create lead")
		return nil, err
	}

	s.logger.Info().Str("lead_id", created.ID).Str("channel", string(created.Channel)).Msg("lead created")
	return created, nil
}

func (s *LeadService) Update(ctx context.Context, id string, in ports.UpdateLeadInput) (*domain.Lead, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("lead_id", id).Msg("lead deleted")
	return nil
}
