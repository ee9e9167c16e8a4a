package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). Throttle
// errors are never fatal to a login: the check is skipped and logged.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	audit    ports.AuditRecorder
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	tokens ports.TokenService,
	throttle LoginThrottle,
	audit ports.AuditRecorder,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 20 * time.Minute
	}
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a new user with a bcrypt-hashed password and the default
// role. The plaintext password is hashed once and never stored or logged.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Username:  created.Username,
		ActorID:   created.ID,
		Action:    domain.AuditActionRegister,
		Result:    domain.AuditResultOK,
		Timestamp: now,
	})
	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")

	return created, nil
}

// Login verifies credentials and mints a bearer token. A missing user and a
// wrong password both surface as ErrInvalidCredentials so the response never
// reveals whether the username existed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
	} else if !allowed {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", s.failLogin(ctx, username)
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", s.failLogin(ctx, username)
	}

	token, err := s.tokens.Issue(user.Username, user.ID, s.tokenTTL)
	if err != nil {
		return "", err
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
	}

	s.audit.Record(domain.AuditEvent{
		Username:  user.Username,
		ActorID:   user.ID,
		Action:    domain.AuditActionLogin,
		Result:    domain.AuditResultOK,
		Timestamp: time.Now().UTC(),
	})

	return token, nil
}

func (s *AuthService) failLogin(ctx context.Context, username string) error {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
	}

	s.audit.Record(domain.AuditEvent{
		Username:  username,
		Action:    domain.AuditActionLogin,
		Result:    domain.AuditResultFailed,
		Timestamp: time.Now().UTC(),
	})

	return domain.ErrInvalidCredentials
}
