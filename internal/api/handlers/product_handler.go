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

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	if size := c.QueryParam("size"); size != "" {
		products, err := h.products.ListProductsBySize(c.Request().Context(), middleware.Role(c), models.ProductSize(size))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}

	products, err := h.products.ListProducts(c.Request().Context(), middleware.Role(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.GetProductByName(c.Request().Context(), middleware.Role(c), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req validator.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.products.AddProduct(c.Request().Context(), middleware.Role(c), req.Name, models.ProductSize(req.Size))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Rename(c echo.Context) error {
	var req validator.RenameProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.products.RenameProduct(c.Request().Context(), middleware.Role(c), c.Param("name"), req.NewName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.DeleteProduct(c.Request().Context(), middleware.Role(c), c.Param("name")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) CreateStock(c echo.Context) error {
	var req validator.StockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stock, err := h.products.CreateStock(c.Request().Context(), middleware.Role(c), req.ProductID, req.WarehouseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stock)
}

func (h *ProductHandler) AdjustStock(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req validator.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stock, err := h.products.AdjustStock(c.Request().Context(), middleware.Role(c), uint(productID), req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stock)
}
