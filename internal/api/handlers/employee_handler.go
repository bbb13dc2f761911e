package handlers

import (
	"net/http"

	"stockroom/internal/api/middleware"
	"stockroom/internal/api/validator"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

type EmployeeHandler struct {
	employees *services.EmployeeService
}

func NewEmployeeHandler(employees *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Register creates an inactive account and triggers the activation
// email.
func (h *EmployeeHandler) Register(c echo.Context) error {
	var req validator.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	employee, err := h.employees.Register(c.Request().Context(), req.Username, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, employee)
}

// Activate flips an account active from the emailed token.
func (h *EmployeeHandler) Activate(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token parameter")
	}

	employee, err := h.employees.Activate(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Login(c echo.Context) error {
	var req validator.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	employee, pair, err := h.employees.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"employee": employee,
		"tokens":   pair,
	})
}

func (h *EmployeeHandler) Refresh(c echo.Context) error {
	var req validator.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, pair, err := h.employees.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Me returns the authenticated employee.
func (h *EmployeeHandler) Me(c echo.Context) error {
	employee, err := h.employees.GetEmployee(c.Request().Context(), middleware.EmployeeID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.employees.ListEmployees(c.Request().Context(), middleware.Role(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}
