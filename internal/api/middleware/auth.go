package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/identity-service/internal/core/ports"
)

// Context keys set by Auth for downstream guards and handlers.
const (
	ContextKeyUsername = "username"
	ContextKeyUserID   = "user_id"
)

// Auth resolves the bearer token to an authenticated principal and injects
// it into the request context. Tokens carry identity only; role resolution
// happens in the guards so permission changes take effect without reissue.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyUserID, claims.UserID)

			return next(c)
		}
	}
}
