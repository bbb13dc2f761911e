package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/api/middleware"
	"stockroom/internal/api/validator"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return uint(id), nil
}

// List returns a warehouse's tasks, optionally filtered by approval or
// completion status.
func (h *TaskHandler) List(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if approval := c.QueryParam("approval_status"); approval != "" {
		tasks, err := h.tasks.ListTasksByApproval(ctx, id, models.ApprovalStatus(approval))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tasks)
	}
	if completion := c.QueryParam("completion_status"); completion != "" {
		tasks, err := h.tasks.ListTasksByCompletion(ctx, id, models.CompletionStatus(completion))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tasks)
	}

	tasks, err := h.tasks.ListTasks(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Create(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}

	var req validator.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), id, req.ProductID, req.Quantity, models.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Approve(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.ApproveTask(c.Request().Context(), middleware.Role(c), id, tid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Complete(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.CompleteTask(c.Request().Context(), id, tid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Modify(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	var req validator.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.ModifyTask(c.Request().Context(), id, models.WarehouseTask{
		ID:        tid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    models.TaskStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.DeleteTask(c.Request().Context(), id, tid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
