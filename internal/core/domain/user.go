package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")
var ErrInvalidToken = errors.New("could not validate credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidOperation = errors.New("invalid operation")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
