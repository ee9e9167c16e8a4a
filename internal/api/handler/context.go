package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/identity-service/internal/api/middleware"
)

// principal is the authenticated identity injected by the Auth middleware.
type principal struct {
	Username string
	UserID   int64
}

// ctxPrincipal extracts the principal and performs a fast-fail check before
// any service call: both claims must be present, which proves the Auth
// middleware ran. Handlers must never run with a partial identity.
func ctxPrincipal(c echo.Context) (principal, error) {
	username, _ := c.Get(middleware.ContextKeyUsername).(string)
	userID, _ := c.Get(middleware.ContextKeyUserID).(int64)
	if username == "" || userID == 0 {
		return principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal{Username: username, UserID: userID}, nil
}
