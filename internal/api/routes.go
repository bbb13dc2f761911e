package api

import (
	"net/http"

	"stockroom/internal/api/handlers"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsHandler())

	employeeHandler := handlers.NewEmployeeHandler(s.services.Employees)
	productHandler := handlers.NewProductHandler(s.services.Products)
	warehouseHandler := handlers.NewWarehouseHandler(s.services.Warehouses)
	taskHandler := handlers.NewTaskHandler(s.services.Tasks)

	v1 := s.echo.Group("/api/v1")

	// Public employee endpoints
	v1.POST("/employees/register", employeeHandler.Register)
	v1.GET("/employees/activate", employeeHandler.Activate)
	v1.POST("/employees/login", employeeHandler.Login)
	v1.POST("/employees/refresh", employeeHandler.Refresh)

	// Everything below requires a valid access token
	auth := v1.Group("", s.services.Security.Middleware.Middleware())

	auth.GET("/employees/me", employeeHandler.Me)
	auth.GET("/employees", employeeHandler.List)

	auth.GET("/products", productHandler.List)
	auth.GET("/products/:name", productHandler.Get)
	auth.POST("/products", productHandler.Create)
	auth.PUT("/products/:name", productHandler.Rename)
	auth.DELETE("/products/:name", productHandler.Delete)
	auth.POST("/stocks", productHandler.CreateStock)
	auth.PUT("/stocks/:id", productHandler.AdjustStock)

	auth.GET("/warehouses", warehouseHandler.List)
	auth.GET("/warehouses/:id", warehouseHandler.Get)
	auth.POST("/warehouses", warehouseHandler.Create)
	auth.PUT("/warehouses/:id", warehouseHandler.Modify)
	auth.PUT("/warehouses/:id/occupied-area", warehouseHandler.SetOccupiedArea)
	auth.DELETE("/warehouses/:id", warehouseHandler.Delete)

	auth.GET("/warehouses/:id/tasks", taskHandler.List)
	auth.POST("/warehouses/:id/tasks", taskHandler.Create)
	auth.PUT("/warehouses/:id/tasks/:taskId", taskHandler.Modify)
	auth.PUT("/warehouses/:id/tasks/:taskId/approve", taskHandler.Approve)
	auth.PUT("/warehouses/:id/tasks/:taskId/complete", taskHandler.Complete)
	auth.DELETE("/warehouses/:id/tasks/:taskId", taskHandler.Delete)

	auth.GET("/feed", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"enabled":  s.services.Feed.Enabled(c.Request().Context()),
			"messages": s.services.Feed.Messages(),
		})
	})
}
