package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
)

type RegisterRequest struct {
	Email       string
	DisplayName string
	Role        sessiondomain.UserRole
	Password    string
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	// Authenticate verifies email/password credentials and returns the
	// matching user, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id snowflake.ID, at time.Time) error
}
