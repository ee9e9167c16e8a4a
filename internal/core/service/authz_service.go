package service

import (
	"context"
	"errors"

	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// AuthorizationService resolves effective roles from the credential store
// and answers permission and ownership questions against the static table.
type AuthorizationService struct {
	repo ports.UserRepository
}

func NewAuthorizationService(repo ports.UserRepository) *AuthorizationService {
	return &AuthorizationService{repo: repo}
}

// RoleOf returns the effective role for a user id. An absent user resolves
// to guest; a stored user without a role resolves to the default role.
func (s *AuthorizationService) RoleOf(ctx context.Context, userID int64) (domain.Role, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.RoleGuest, nil
		}
		return "", err
	}
	if user.Role == "" {
		return domain.DefaultRole, nil
	}
	return user.Role, nil
}

// HasPermission reports whether the role holds the permission.
func (s *AuthorizationService) HasPermission(role domain.Role, perm domain.Permission) bool {
	return role.HasPermission(perm)
}

// CanAccessResource reports whether the current user may touch a resource
// owned by resourceID: owners always may, elevated roles may touch any.
func (s *AuthorizationService) CanAccessResource(currentID, resourceID int64, role domain.Role) bool {
	return currentID == resourceID || role.Elevated()
}
