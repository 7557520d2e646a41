package auth

import "errors"

var (
	// ErrInvalidToken covers bad signatures, expiry, malformed input and purpose mismatch.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnknownPrincipal means a verified token names an account that no longer exists.
	ErrUnknownPrincipal = errors.New("unknown principal")

	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
