package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/clock"
	"github.com/impactlink/engage/internal/config"
	"github.com/impactlink/engage/internal/session/domain"
	"github.com/impactlink/engage/internal/session/repository"
	"github.com/impactlink/engage/internal/session/token"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	userrepository "github.com/impactlink/engage/internal/user/repository"
	userservice "github.com/impactlink/engage/internal/user/service"
	"github.com/impactlink/engage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	users userdomain.Service
	db    *gorm.DB
	clk   *clock.FakeClock
	node  *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.Session{}, &domain.LoginAttempt{}, &userdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		SigningSecret:    "test-secret",
		SessionTTL:       time.Hour,
		SessionRetention: 30 * 24 * time.Hour,
	}

	clk := clock.NewFakeClock(time.Now())
	repo, attempts := repository.New(dbConn)
	users := userservice.New(zap.NewNop(), userrepository.New(dbConn), node)

	svc := New(Params{
		Log:      zap.NewNop(),
		Repo:     repo,
		Attempts: attempts,
		Codec:    token.NewCodec(cfg),
		Users:    users,
		Clock:    clk,
		GenID:    node,
		Config:   cfg,
	})

	return &fixture{svc: svc, users: users, db: dbConn, clk: clk, node: node}
}

func (f *fixture) registerUser(t *testing.T, email string) *userdomain.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), userdomain.RegisterRequest{
		Email:    email,
		Role:     domain.RoleIndividual,
		Password: "correct-password",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) createSession(t *testing.T, user *userdomain.User) *domain.CreateResult {
	t.Helper()
	result, err := f.svc.Create(context.Background(), domain.CreateRequest{
		UserID:      user.ID,
		Role:        user.Role,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36",
	})
	require.NoError(t, err)
	return result
}

func TestCreateValidateRoundTrip(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")

	result := f.createSession(t, user)
	require.NotEmpty(t, result.Token)

	data, err := f.svc.Validate(context.Background(), result.Token)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, user.ID, data.UserID)
	assert.Equal(t, domain.RoleIndividual, data.Role)
	assert.Equal(t, "alice@example.com", data.Email)
	assert.Equal(t, result.SessionID, data.SessionID)
}

func TestCreateRecordsAuditTrail(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	result := f.createSession(t, user)

	var attempt domain.LoginAttempt
	require.NoError(t, f.db.Where("user_id = ?", user.ID).First(&attempt).Error)
	assert.Equal(t, domain.AttemptSuccess, attempt.Outcome)
	require.NotNil(t, attempt.SessionID)
	assert.Equal(t, result.SessionID, *attempt.SessionID)

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestValidateTouchesLastActivity(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	result := f.createSession(t, user)

	f.clk.Advance(10 * time.Minute)
	_, err := f.svc.Validate(context.Background(), result.Token)
	require.NoError(t, err)

	// The touch happens off the request path.
	assert.Eventually(t, func() bool {
		var session domain.Session
		if err := f.db.Where("id = ?", result.SessionID).First(&session).Error; err != nil {
			return false
		}
		return session.LastActivityAt.After(session.CreatedAt)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestValidateExpiredSession(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	result := f.createSession(t, user)

	f.clk.Advance(2 * time.Hour)

	data, err := f.svc.Validate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestValidateGarbageToken(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.Validate(context.Background(), "definitely-not-a-token")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRevokeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	result := f.createSession(t, user)

	require.NoError(t, f.svc.Revoke(context.Background(), result.SessionID))
	require.NoError(t, f.svc.Revoke(context.Background(), result.SessionID))
	require.NoError(t, f.svc.Revoke(context.Background(), f.node.Generate()))

	data, err := f.svc.Validate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRevokeAllDevices(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	first := f.createSession(t, user)
	second := f.createSession(t, user)

	require.NoError(t, f.svc.RevokeAll(context.Background(), user.ID))

	views, err := f.svc.ListActive(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	for _, result := range []*domain.CreateResult{first, second} {
		data, err := f.svc.Validate(context.Background(), result.Token)
		require.NoError(t, err)
		assert.Nil(t, data)
	}
}

func TestListActiveMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	older := f.createSession(t, user)

	f.clk.Advance(time.Minute)
	newer := f.createSession(t, user)

	views, err := f.svc.ListActive(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, newer.SessionID, views[0].SessionID)
	assert.Equal(t, older.SessionID, views[1].SessionID)
	assert.Equal(t, "Chrome", views[0].Browser)
}

func TestSweepDeletesOnlyStaleSessions(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")

	f.createSession(t, user) // will expire
	revoked := f.createSession(t, user)
	require.NoError(t, f.svc.Revoke(context.Background(), revoked.SessionID))

	// Push the expired and revoked sessions past the retention window,
	// then create one that is still valid.
	f.clk.Advance(31 * 24 * time.Hour)
	valid := f.createSession(t, user)

	deleted, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)

	data, err := f.svc.Validate(context.Background(), valid.Token)
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestValidateStorageErrorIsNotUnauthenticated(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, "alice@example.com")
	result := f.createSession(t, user)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.svc.Validate(context.Background(), result.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
