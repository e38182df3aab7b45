package domain

import "errors"

var (
	// ErrInvalidToken covers malformed, tampered and expired bearer
	// tokens alike; callers must not learn which.
	ErrInvalidToken = errors.New("invalid token")

	ErrSessionNotFound = errors.New("session not found")

	// ErrStorage marks persistence failures. Never collapsed into an
	// unauthenticated outcome; a database outage must not look like a
	// mass logout.
	ErrStorage = errors.New("session storage unavailable")
)
