package ports

import (
	"context"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// UserProfile is the full view of the authenticated principal, with the
// role and permission set resolved from the credential store.
type UserProfile struct {
	ID          int64
	Username    string
	Role        domain.Role
	Permissions []domain.Permission
}

// RoleStats is the per-role user census returned by the admin stats endpoint.
type RoleStats struct {
	Total  int64
	ByRole map[domain.Role]int64
}

// UserService defines use-case operations over user records. Ownership and
// elevation rules are enforced here; permission gating happens in the guards.
type UserService interface {
	Profile(ctx context.Context, userID int64) (*UserProfile, error)
	List(ctx context.Context) ([]domain.User, error)
	// Get returns the target user when the requester owns the record or
	// holds an elevated role, domain.ErrForbidden otherwise.
	Get(ctx context.Context, requesterID, targetID int64) (*domain.User, error)
	// Delete removes the target user. Self-deletion is rejected with
	// domain.ErrInvalidOperation before any mutation.
	Delete(ctx context.Context, requesterID, targetID int64) error
	Stats(ctx context.Context) (*RoleStats, error)
}
