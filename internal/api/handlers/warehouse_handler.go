package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/api/middleware"
	"stockroom/internal/api/validator"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

type WarehouseHandler struct {
	warehouses *services.WarehouseService
}

func NewWarehouseHandler(warehouses *services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

func warehouseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid warehouse id")
	}
	return uint(id), nil
}

func (h *WarehouseHandler) List(c echo.Context) error {
	warehouses, err := h.warehouses.ListWarehouses(c.Request().Context(), middleware.Role(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouses)
}

func (h *WarehouseHandler) Get(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	warehouse, err := h.warehouses.GetWarehouse(c.Request().Context(), middleware.Role(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) Create(c echo.Context) error {
	var req validator.WarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	warehouse, err := h.warehouses.AddWarehouse(c.Request().Context(), middleware.Role(c), req.Name, req.Capacity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, warehouse)
}

func (h *WarehouseHandler) Modify(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}

	var req validator.ModifyWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	warehouse, err := h.warehouses.ModifyWarehouse(c.Request().Context(), middleware.Role(c), id, req.Name, req.Capacity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) SetOccupiedArea(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}

	var req validator.OccupiedAreaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	warehouse, err := h.warehouses.SetOccupiedArea(c.Request().Context(), middleware.Role(c), id, req.OccupiedArea)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) Delete(c echo.Context) error {
	id, err := warehouseID(c)
	if err != nil {
		return err
	}
	if err := h.warehouses.DeleteWarehouse(c.Request().Context(), middleware.Role(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
