package ports

import "time"

// TokenClaims is the identity carried by a verified bearer token.
type TokenClaims struct {
	Username string
	UserID   int64
}

// TokenService mints and validates signed, time-limited bearer tokens.
type TokenService interface {
	// Issue encodes the subject identity and an absolute expiry (now + ttl)
	// into a signed token.
	Issue(username string, userID int64, ttl time.Duration) (string, error)
	// Verify checks signature, required claims, and expiry. Any failure
	// surfaces as domain.ErrInvalidToken.
	Verify(token string) (*TokenClaims, error)
}
