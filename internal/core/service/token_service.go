package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// Fine-grained token failure modes. Callers match on domain.ErrInvalidToken;
// these let logs and tests distinguish why verification failed.
var (
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenMissingClaims = errors.New("token missing required claims")
)

type tokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed bearer tokens. The subject
// claim carries the username and the id claim carries the numeric user id.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token expiring at now + ttl.
func (s *TokenService) Issue(username string, userID int64, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, the signing method, and expiry, and requires
// both identity claims. Every failure wraps domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrInvalidToken, ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, ErrTokenMalformed)
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, ErrTokenMissingClaims)
	}

	return &ports.TokenClaims{
		Username: claims.Subject,
		UserID:   claims.UserID,
	}, nil
}
