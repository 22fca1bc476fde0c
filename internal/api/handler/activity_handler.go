package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type ActivityHandler struct {
	activityService ports.ActivityService
}

func NewActivityHandler(activityService ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type createActivityRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Type        string     `json:"type" validate:"required,oneof=appointment follow_up test_drive delivery service meeting call"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	ScheduledAt time.Time  `json:"scheduledAt" validate:"required"`
	EndAt       *time.Time `json:"endAt"`
	AssignedTo  string     `json:"assignedTo" validate:"omitempty,mongodb"`
	RelatedLead string     `json:"relatedLead" validate:"omitempty,mongodb"`
	Location    string     `json:"location" validate:"omitempty,max=300"`
}

type updateActivityRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Type        *string    `json:"type" validate:"omitempty,oneof=appointment follow_up test_drive delivery service meeting call"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	EndAt       *time.Time `json:"endAt"`
	AssignedTo  *string    `json:"assignedTo" validate:"omitempty,mongodb"`
	RelatedLead *string    `json:"relatedLead" validate:"omitempty,mongodb"`
	Location    *string    `json:"location" validate:"omitempty,max=300"`
	IsCompleted *bool      `json:"isCompleted"`
}

// List returns a page of activities, optionally filtered by type and a
// scheduled-date range.
//
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        type   query  string  false  "Filter by type"
// @Param        from   query  string  false  "Scheduled from (RFC 3339)"
// @Param        to     query  string  false  "Scheduled until (RFC 3339)"
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size (max 100)"
// @Success      200  {object}  Response
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := ports.ListActivitiesFilter{
		Type:  c.QueryParam("type"),
		Page:  page,
		Limit: limit,
	}
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return &domain.ValidationError{Fields: []string{"from must be an RFC 3339 timestamp"}}
		}
		filter.From = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return &domain.ValidationError{Fields: []string{"to must be an RFC 3339 timestamp"}}
		}
		filter.To = t
	}

	activities, total, err := h.activityService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondPaged(c, "Activities retrieved", activities, NewMeta(total, page, limit))
}

// Create schedules a new activity. The assignee defaults to the acting user.
//
// @Summary      Create activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createActivityRequest  true  "Activity details"
// @Success      201   {object}  Response
// @Failure      400   {object}  Response
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	activity, err := h.activityService.Create(c.Request().Context(), ports.CreateActivityInput{
		Title:       req.Title,
		Type:        domain.ActivityType(req.Type),
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		EndAt:       req.EndAt,
		AssignedTo:  req.AssignedTo,
		RelatedLead: req.RelatedLead,
		Location:    req.Location,
	}, user)
	if err != nil {
		return err
	}
	return respondCreated(c, "Activity created", activity)
}

// Update modifies the provided fields of an existing activity.
//
// @Summary      Update activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Activity ID"
// @Param        body  body      updateActivityRequest  true  "Fields to update"
// @Success      200   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	var req updateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		EndAt:       req.EndAt,
		AssignedTo:  req.AssignedTo,
		RelatedLead: req.RelatedLead,
		Location:    req.Location,
		IsCompleted: req.IsCompleted,
	}
	if req.Type != nil {
		typ := domain.ActivityType(*req.Type)
		in.Type = &typ
	}

	activity, err := h.activityService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Activity updated", activity)
}

// Delete removes an activity.
//
// @Summary      Delete activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Activity ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	if err := h.activityService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, "Activity deleted", nil)
}
