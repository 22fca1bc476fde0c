package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/api/metrics"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type DashboardHandler struct {
	dashboardService ports.DashboardService
	timeClockService ports.TimeClockService
}

func NewDashboardHandler(dashboard ports.DashboardService, timeClock ports.TimeClockService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboard, timeClockService: timeClock}
}

// Summary assembles the dashboard read-model for the authenticated user.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboardService.Summary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respondOK(c, "Dashboard data retrieved", summary)
}

// ClockIn opens an attendance record for the authenticated user.
//
// @Summary      Clock in
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  Response
// @Failure      400  {object}  Response
// @Router       /api/dashboard/clock-in [post]
func (h *DashboardHandler) ClockIn(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	rec, err := h.timeClockService.ClockIn(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	metrics.ClockEventsTotal.WithLabelValues("in").Inc()

	return respondCreated(c, "Clocked in successfully", rec)
}

// ClockOut closes today's open attendance record for the authenticated user.
//
// @Summary      Clock out
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Router       /api/dashboard/clock-out [post]
func (h *DashboardHandler) ClockOut(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	rec, err := h.timeClockService.ClockOut(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	metrics.ClockEventsTotal.WithLabelValues("out").Inc()

	return respondOK(c, "Clocked out successfully", rec)
}
