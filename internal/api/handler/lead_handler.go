package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/api/metrics"
	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type LeadHandler struct {
	leadService ports.LeadService
}

func NewLeadHandler(leadService ports.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

type createLeadRequest struct {
	CustomerName    string `json:"customerName" validate:"required,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	Channel         string `json:"channel" validate:"required,oneof=email sms"`
	Subject         string `json:"subject" validate:"omitempty,max=200"`
	Message         string `json:"message" validate:"required,max=5000"`
	AssignedTo      string `json:"assignedTo" validate:"omitempty,mongodb"`
	VehicleInterest string `json:"vehicleInterest" validate:"omitempty,max=200"`
	Source          string `json:"source" validate:"omitempty,max=100"`
}

type updateLeadRequest struct {
	CustomerName    *string `json:"customerName" validate:"omitempty,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Status          *string `json:"status" validate:"omitempty,oneof=new contacted qualified lost converted"`
	Subject         *string `json:"subject" validate:"omitempty,max=200"`
	Message         *string `json:"message" validate:"omitempty,max=5000"`
	AssignedTo      *string `json:"assignedTo" validate:"omitempty,mongodb"`
	VehicleInterest *string `json:"vehicleInterest" validate:"omitempty,max=200"`
	Source          *string `json:"source" validate:"omitempty,max=100"`
}

// List returns a page of leads, optionally filtered by channel and status.
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        channel  query  string  false  "Filter by channel"  Enums(email, sms)
// @Param        status   query  string  false  "Filter by status"
// @Param        page     query  int     false  "Page number"
// @Param        limit    query  int     false  "Page size (max 100)"
// @Success      200  {object}  Response
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := ports.ListLeadsFilter{
		Channel: c.QueryParam("channel"),
		Status:  c.QueryParam("status"),
		Page:    page,
		Limit:   limit,
	}

	leads, total, err := h.leadService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondPaged(c, "Leads retrieved", leads, NewMeta(total, page, limit))
}

// Get returns a single lead by id.
//
// @Summary      Get lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	lead, err := h.leadService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondOK(c, "Lead retrieved", lead)
}

// Create records a new inbound lead.
//
// @Summary      Create lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  Response
// @Failure      400   {object}  Response
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := h.leadService.Create(c.Request().Context(), ports.CreateLeadInput{
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		Phone:           req.Phone,
		Channel:         domain.LeadChannel(req.Channel),
		Subject:         req.Subject,
		Message:         req.Message,
		AssignedTo:      req.AssignedTo,
		VehicleInterest: req.VehicleInterest,
		Source:          req.Source,
	})
	if err != nil {
		return err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Channel)).Inc()

	return respondCreated(c, "Lead created", lead)
}

// Update modifies the provided fields of an existing lead.
//
// @Summary      Update lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead ID"
// @Param        body  body      updateLeadRequest  true  "Fields to update"
// @Success      200   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateLeadInput{
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		Phone:           req.Phone,
		Subject:         req.Subject,
		Message:         req.Message,
		AssignedTo:      req.AssignedTo,
		VehicleInterest: req.VehicleInterest,
		Source:          req.Source,
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		in.Status = &status
	}

	lead, err := h.leadService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respondOK(c, "Lead updated", lead)
}

// Delete removes a lead.
//
// @Summary      Delete lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.leadService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, "Lead deleted", nil)
}
