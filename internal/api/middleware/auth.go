package middleware

import (
	"net/http"
	"strings"

	"stockroom/internal/models"
	"stockroom/internal/security"
	"stockroom/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

// Context keys set for every authenticated request.
const (
	ContextEmployeeID = "employee_id"
	ContextUsername   = "username"
	ContextRole       = "role"
)

type AuthMiddleware struct {
	security *security.Service
}

func NewAuthMiddleware(sec *security.Service) *AuthMiddleware {
	return &AuthMiddleware{security: sec}
}

// Middleware verifies the bearer token and stores the employee identity
// on the request context.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := m.security.VerifyToken(tokenParts[1])
			if err != nil {
				log.Warn("rejected token: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			if claims.TokenUse != security.TokenUseAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token type")
			}

			c.Set(ContextEmployeeID, claims.EmployeeID)
			c.Set(ContextUsername, claims.Username)
			c.Set(ContextRole, models.Role(claims.Role))
			return next(c)
		}
	}
}

// EmployeeID returns the authenticated employee id from the context.
func EmployeeID(c echo.Context) uint {
	id, _ := c.Get(ContextEmployeeID).(uint)
	return id
}

// Role returns the authenticated employee role from the context.
func Role(c echo.Context) models.Role {
	role, _ := c.Get(ContextRole).(models.Role)
	return role
}
