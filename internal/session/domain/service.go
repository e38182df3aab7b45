package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest carries everything the lifecycle manager derives a new
// session from. Header values are best-effort; empty strings are fine.
type CreateRequest struct {
	UserID      snowflake.ID
	Role        UserRole
	Email       string
	DisplayName string

	UserAgent     string
	XForwardedFor string
	XRealIP       string
	RemoteAddr    string
}

// CreateResult names the new session and carries its bearer token.
type CreateResult struct {
	SessionID snowflake.ID
	Token     string
	ExpiresAt time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	// Validate returns (nil, nil) for any unauthenticated outcome:
	// bad token, unknown, revoked or expired session. Errors are
	// storage failures only.
	Validate(ctx context.Context, token string) (*SessionData, error)
	Revoke(ctx context.Context, sessionID snowflake.ID) error
	RevokeAll(ctx context.Context, userID snowflake.ID) error
	ListActive(ctx context.Context, userID snowflake.ID) ([]SessionView, error)
	// Sweep prunes expired and long-revoked sessions. Safe to run
	// concurrently with request traffic and to repeat back-to-back.
	Sweep(ctx context.Context) (int64, error)
	// RecordFailedLogin appends a failed LoginAttempt audit row.
	RecordFailedLogin(ctx context.Context, userID snowflake.ID, userAgent, ipAddress string) error
}
