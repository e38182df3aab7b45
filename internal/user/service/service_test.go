package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	"github.com/impactlink/engage/internal/user/domain"
	"github.com/impactlink/engage/internal/user/repository"
	"github.com/impactlink/engage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(zap.NewNop(), repository.New(dbConn), node)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newService(t)

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "Ada@Example.ORG",
		Role:     sessiondomain.RoleNGO,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", user.Email)
	assert.Equal(t, "ada", user.DisplayName)
	assert.Equal(t, sessiondomain.RoleNGO, user.Role)
	assert.Equal(t, "unverified", user.VerificationStatus)

	found, err := svc.Authenticate(context.Background(), "ada@example.org", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "bea@example.org",
		Role:     sessiondomain.RoleIndividual,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "bea@example.org", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.org", "correct-horse-battery")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "bea@example.org", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "not-an-email",
		Role:     sessiondomain.RoleIndividual,
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "cal@example.org",
		Role:     sessiondomain.RoleIndividual,
		Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "cal@example.org",
		Role:     "superuser",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "dee@example.org",
		Role:     sessiondomain.RoleCompany,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "DEE@example.org",
		Role:     sessiondomain.RoleIndividual,
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestFindByEmailAndLastLogin(t *testing.T) {
	svc := newService(t)

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "eve@example.org",
		Role:     sessiondomain.RoleIndividual,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	found, err := svc.FindByEmail(context.Background(), " Eve@Example.org ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.FindByEmail(context.Background(), "nobody@example.org")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, svc.UpdateLastLogin(context.Background(), user.ID, at))

	refreshed, err := svc.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.LastLoginAt)
	assert.WithinDuration(t, at, *refreshed.LastLoginAt, time.Second)
}
