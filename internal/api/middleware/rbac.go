package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/identity-service/internal/api/metrics"
	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// RoleResolver looks up the persisted role for a user id. Absent users
// resolve to guest.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID int64) (domain.Role, error)
}

// RequirePermission rejects the request with 403 unless the principal's
// role grants the permission. A missing principal is an authentication
// failure (401), never conflated with an authorization failure. Denials
// are written to the audit trail.
func RequirePermission(roles RoleResolver, audit ports.AuditRecorder, perm domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := principalRole(c, roles)
			if err != nil {
				return err
			}
			if !role.HasPermission(perm) {
				metrics.AuthzDenialsTotal.WithLabelValues("permission").Inc()
				recordDenial(c, audit, fmt.Sprintf("permission %q required", perm))
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("permission %q required", perm))
			}
			return next(c)
		}
	}
}

// RequireRole rejects the request with 403 unless the principal holds one
// of the allowed roles.
func RequireRole(roles RoleResolver, audit ports.AuditRecorder, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := principalRole(c, roles)
			if err != nil {
				return err
			}
			if _, ok := allowed[role]; !ok {
				metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
				recordDenial(c, audit, fmt.Sprintf("role %q insufficient", role))
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// RequireAdmin is shorthand for RequirePermission(admin_access).
func RequireAdmin(roles RoleResolver, audit ports.AuditRecorder) echo.MiddlewareFunc {
	return RequirePermission(roles, audit, domain.PermissionAdminAccess)
}

// RequireModerator allows moderators and admins.
func RequireModerator(roles RoleResolver, audit ports.AuditRecorder) echo.MiddlewareFunc {
	return RequireRole(roles, audit, domain.RoleAdmin, domain.RoleModerator)
}

// principalRole extracts the principal injected by Auth and resolves its
// role from the credential store. 401 when no principal is present.
func principalRole(c echo.Context, roles RoleResolver) (domain.Role, error) {
	userID, ok := c.Get(ContextKeyUserID).(int64)
	if !ok || userID == 0 {
		metrics.AuthzDenialsTotal.WithLabelValues("missing_principal").Inc()
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	role, err := roles.RoleOf(c.Request().Context(), userID)
	if err != nil {
		return "", err
	}
	return role, nil
}

// recordDenial writes a guard rejection to the audit trail. Only reached
// with an authenticated principal; 401 paths carry no identity to record.
func recordDenial(c echo.Context, audit ports.AuditRecorder, detail string) {
	username, _ := c.Get(ContextKeyUsername).(string)
	userID, _ := c.Get(ContextKeyUserID).(int64)
	audit.Record(domain.AuditEvent{
		Username:  username,
		ActorID:   userID,
		Action:    domain.AuditActionDenied,
		Result:    domain.AuditResultFailed,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
