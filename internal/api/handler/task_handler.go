package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/api/metrics"
	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  string    `json:"assignedTo" validate:"required,mongodb"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	RelatedLead string    `json:"relatedLead" validate:"omitempty,mongodb"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *string    `json:"assignedTo" validate:"omitempty,mongodb"`
	DueDate     *time.Time `json:"dueDate"`
	RelatedLead *string    `json:"relatedLead" validate:"omitempty,mongodb"`
}

// List returns a page of tasks, optionally filtered by status.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size (max 100)"
// @Success      200  {object}  Response
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := ports.ListTasksFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}

	tasks, total, err := h.taskService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondPaged(c, "Tasks retrieved", tasks, NewMeta(total, page, limit))
}

// Create registers a new task for a user.
//
// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  Response
// @Failure      400   {object}  Response
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		RelatedLead: req.RelatedLead,
	}, user)
	if err != nil {
		return err
	}
	return respondCreated(c, "Task created", task)
}

// Update modifies the provided fields of an existing task. Moving a task to
// completed stamps its completion time.
//
// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		RelatedLead: req.RelatedLead,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}

	task, err := h.taskService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	if in.Status != nil && *in.Status == domain.TaskStatusCompleted {
		metrics.TasksCompletedTotal.Inc()
	}
	return respondOK(c, "Task updated", task)
}

// Delete removes a task.
//
// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.taskService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, "Task deleted", nil)
}
