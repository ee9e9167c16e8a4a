package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// UserService implements use-case operations over user records.
type UserService struct {
	repo  ports.UserRepository
	authz *AuthorizationService
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, authz *AuthorizationService, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, authz: authz, audit: audit, log: log}
}

// Profile returns the principal's own record with the role and permission
// set resolved from the credential store.
func (s *UserService) Profile(ctx context.Context, userID int64) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := user.Role
	if role == "" {
		role = domain.DefaultRole
	}

	return &ports.UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		Role:        role,
		Permissions: role.Permissions(),
	}, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Get enforces resource ownership: requesters see their own record, elevated
// roles see any record.
func (s *UserService) Get(ctx context.Context, requesterID, targetID int64) (*domain.User, error) {
	role, err := s.authz.RoleOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessResource(requesterID, targetID, role) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, targetID)
}

// Delete removes the target user. Self-deletion is a business-rule error,
// rejected before any mutation.
func (s *UserService) Delete(ctx context.Context, requesterID, targetID int64) error {
	if requesterID == targetID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrInvalidOperation)
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		Username:  target.Username,
		ActorID:   requesterID,
		Action:    domain.AuditActionUserDeleted,
		Result:    domain.AuditResultOK,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Int64("user_id", target.ID).Int64("deleted_by", requesterID).Msg("user deleted")

	return nil
}

// Stats returns the per-role user census for the admin dashboard.
func (s *UserService) Stats(ctx context.Context) (*ports.RoleStats, error) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleModerator, domain.RoleUser, domain.RoleGuest}

	stats := &ports.RoleStats{ByRole: make(map[domain.Role]int64, len(roles))}
	for _, role := range roles {
		n, err := s.repo.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		stats.ByRole[role] = n
		stats.Total += n
	}
	return stats, nil
}
