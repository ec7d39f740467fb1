package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetcost-team/meetcost/pkg/jwt"
)

const (
	// UserIDKey is the echo context key for the authenticated user's ID
	UserIDKey = "user_id"
	// OrganizationIDKey is the echo context key for the user's organization
	OrganizationIDKey = "organization_id"
)

// EchoAuth returns an Echo middleware that validates the access token and
// sets "user_id" and "organization_id" (both uuid.UUID) into Echo context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(OrganizationIDKey, claims.OrganizationID)

			return next(c)
		}
	}
}

// UserID retrieves the authenticated user's ID from Echo context
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}

// OrganizationID retrieves the authenticated user's organization from Echo context
func OrganizationID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(OrganizationIDKey).(uuid.UUID)
	return id, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
