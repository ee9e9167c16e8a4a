package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// staticRoles resolves every user id to a fixed role.
type staticRoles struct {
	role domain.Role
}

func (s staticRoles) RoleOf(context.Context, int64) (domain.Role, error) {
	return s.role, nil
}

// captureRecorder collects audit events emitted by the guards.
type captureRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *captureRecorder) Record(event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *captureRecorder) all() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func newGuardContext(e *echo.Echo, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(ContextKeyUsername, "someone")
		c.Set(ContextKeyUserID, userID)
	}
	return c, rec
}

func TestRequirePermission_Allows(t *testing.T) {
	e := echo.New()
	c, rec := newGuardContext(e, 42)

	called := false
	mw := RequirePermission(staticRoles{domain.RoleModerator}, &captureRecorder{}, domain.PermissionReadUsers)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_Forbids(t *testing.T) {
	e := echo.New()
	c, rec := newGuardContext(e, 42)

	mw := RequirePermission(staticRoles{domain.RoleUser}, &captureRecorder{}, domain.PermissionReadUsers)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

// Every guard rejection lands in the audit trail with the principal's
// identity attached.
func TestRequirePermission_DenialIsAudited(t *testing.T) {
	e := echo.New()
	c, _ := newGuardContext(e, 42)

	audit := &captureRecorder{}
	mw := RequirePermission(staticRoles{domain.RoleUser}, audit, domain.PermissionReadUsers)
	handler := mw(func(c echo.Context) error { return nil })

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	events := audit.all()
	if len(events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(events))
	}
	ev := events[0]
	if ev.Action != domain.AuditActionDenied || ev.Result != domain.AuditResultFailed {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Username != "someone" || ev.ActorID != 42 {
		t.Fatalf("event missing principal identity: %+v", ev)
	}
	if ev.Detail == "" {
		t.Fatalf("expected denial detail, got empty")
	}
}

func TestRequirePermission_AllowedIsNotAudited(t *testing.T) {
	e := echo.New()
	c, _ := newGuardContext(e, 42)

	audit := &captureRecorder{}
	mw := RequirePermission(staticRoles{domain.RoleAdmin}, audit, domain.PermissionReadUsers)
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(audit.all()) != 0 {
		t.Fatalf("allowed request must not produce audit events")
	}
}

// A missing principal is an authentication failure, not an authorization one.
func TestRequirePermission_MissingPrincipalIs401(t *testing.T) {
	e := echo.New()
	c, rec := newGuardContext(e, 0)

	audit := &captureRecorder{}
	mw := RequirePermission(staticRoles{domain.RoleAdmin}, audit, domain.PermissionReadUsers)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	// No identity to attach, so no audit event either.
	if len(audit.all()) != 0 {
		t.Fatalf("401 path must not produce audit events")
	}
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c, rec := newGuardContext(e, 42)

	called := false
	mw := RequireRole(staticRoles{domain.RoleModerator}, &captureRecorder{}, domain.RoleAdmin, domain.RoleModerator)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with handler called, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	e := echo.New()
	c, rec := newGuardContext(e, 42)

	audit := &captureRecorder{}
	mw := RequireRole(staticRoles{domain.RoleGuest}, audit, domain.RoleAdmin, domain.RoleModerator)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	events := audit.all()
	if len(events) != 1 || events[0].Action != domain.AuditActionDenied {
		t.Fatalf("expected one denial audit event, got %+v", events)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	// Moderator lacks admin_access.
	c, rec := newGuardContext(e, 42)
	mw := RequireAdmin(staticRoles{domain.RoleModerator}, &captureRecorder{})
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator, got %d", rec.Code)
	}

	// Admin passes.
	c, rec = newGuardContext(e, 42)
	handler = RequireAdmin(staticRoles{domain.RoleAdmin}, &captureRecorder{})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestRequireModerator(t *testing.T) {
	e := echo.New()

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleModerator} {
		c, rec := newGuardContext(e, 42)
		handler := RequireModerator(staticRoles{role}, &captureRecorder{})(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("handler error for %s: %v", role, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", role, rec.Code)
		}
	}

	c, rec := newGuardContext(e, 42)
	handler := RequireModerator(staticRoles{domain.RoleUser}, &captureRecorder{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user, got %d", rec.Code)
	}
}
