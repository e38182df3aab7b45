package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, session *Session) error
	// FindValid returns the session only when it belongs to userID,
	// is still active and has not expired at now.
	FindValid(ctx context.Context, sessionID, userID snowflake.ID, now time.Time) (*Session, error)
	TouchLastActivity(ctx context.Context, sessionID snowflake.ID, at time.Time) error
	// Revoke flips active to false. Revoking a missing or already
	// revoked session is not an error.
	Revoke(ctx context.Context, sessionID snowflake.ID) error
	RevokeAllForUser(ctx context.Context, userID snowflake.ID) error
	ListActive(ctx context.Context, userID snowflake.ID, now time.Time) ([]Session, error)
	// DeleteStale removes sessions expired before now and revoked
	// sessions idle past the retention window.
	DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error)
}

type AttemptRepository interface {
	Record(ctx context.Context, attempt *LoginAttempt) error
}
