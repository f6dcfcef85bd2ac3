package domain

import "errors"

// Sentinel errors for the user domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ErrInvalidPassword is returned for passwords outside the accepted length.
var ErrInvalidPassword = errors.New("password must be between 8 and 72 bytes")
