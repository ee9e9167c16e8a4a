package ports

import (
	"context"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// AuthService implements registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token. All
	// credential failures surface as domain.ErrInvalidCredentials so the
	// response never reveals whether the username existed.
	Login(ctx context.Context, username, password string) (string, error)
}
