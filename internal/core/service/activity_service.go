package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

// ActivityService implements CRUD use-cases over scheduled activities.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

func (s *ActivityService) List(ctx context.Context, filter ports.ListActivitiesFilter) ([]domain.Activity, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

// Create persists an activity. The creator is the acting user and the
// assignee defaults to the acting user when unspecified.
func (s *ActivityService) Create(ctx context.Context, in ports.CreateActivityInput, actingUser *domain.User) (*domain.Activity, error) {
	assignedTo := in.AssignedTo
	if assignedTo == "" {
		assignedTo = actingUser.ID
	}

	activity := &domain.Activity{
		Title:       in.Title,
		Type:        in.Type,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt,
		EndAt:       in.EndAt,
		AssignedTo:  assignedTo,
		CreatedBy:   actingUser.ID,
		RelatedLead: in.RelatedLead,
		Location:    in.Location,
	}

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create activity")
		return nil, err
	}

	s.logger.Info().Str("activity_id", created.ID).Str("type", string(created.Type)).Msg("activity created")
	return created, nil
}

func (s *ActivityService) Update(ctx context.Context, id string, in ports.UpdateActivityInput) (*domain.Activity, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("activity_id", id).Msg("activity deleted")
	return nil
}
