package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/activity/domain"
	"github.com/impactlink/engage/internal/activity/repository"
	"github.com/impactlink/engage/internal/clock"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	trendingrepository "github.com/impactlink/engage/internal/trending/repository"
	trendingservice "github.com/impactlink/engage/internal/trending/service"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	"github.com/impactlink/engage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc      domain.Service
	trending trendingdomain.Repository
	db       *gorm.DB
	clk      *clock.FakeClock
	node     *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.ActivityEvent{},
		&trendingdomain.Hashtag{},
		&userdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Now())

	repo, usages := repository.New(dbConn)
	trendingRepo := trendingrepository.New(dbConn)
	trendingSvc := trendingservice.New(trendingservice.Params{
		Log:    zap.NewNop(),
		Repo:   trendingRepo,
		Usages: usages,
		Clock:  clk,
		GenID:  node,
	})

	svc := New(Params{
		Log:      zap.NewNop(),
		Repo:     repo,
		Trending: trendingSvc,
		Clock:    clk,
		GenID:    node,
	})

	return &fixture{svc: svc, trending: trendingRepo, db: dbConn, clk: clk, node: node}
}

func (f *fixture) createUser(t *testing.T, name string) snowflake.ID {
	t.Helper()
	user := userdomain.User{
		ID:                 f.node.Generate(),
		Email:              strings.ToLower(name) + "@example.org",
		DisplayName:        name,
		Role:               sessiondomain.RoleIndividual,
		VerificationStatus: "unverified",
		CreatedAt:          f.clk.Now(),
		UpdatedAt:          f.clk.Now(),
	}
	require.NoError(t, f.db.Create(&user).Error)
	return user.ID
}

func (f *fixture) eventsOfKind(t *testing.T, kind domain.EventKind) []domain.ActivityEvent {
	t.Helper()
	var events []domain.ActivityEvent
	require.NoError(t, f.db.Where("kind = ?", kind).Order("created_at").Find(&events).Error)
	return events
}

func TestTrackPostCreationRecordsEventAndCounters(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Ada")
	postID := f.node.Generate()

	err := f.svc.TrackPostCreation(context.Background(), actor, postID,
		"Proud of our #Impact #impact cleanup today")
	require.NoError(t, err)

	posts := f.eventsOfKind(t, domain.KindPostCreate)
	require.Len(t, posts, 1)
	assert.Equal(t, actor, posts[0].ActorID)
	require.NotNil(t, posts[0].EntityID)
	assert.Equal(t, postID, *posts[0].EntityID)

	// Repeated casings collapse to one tag, so one usage event and a
	// single counter increment.
	usages := f.eventsOfKind(t, domain.KindHashtagUse)
	require.Len(t, usages, 1)
	assert.Equal(t, "impact", usages[0].Payload["tag"])

	row, err := f.trending.FindByTag(context.Background(), "impact")
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.TotalMentions)
}

func TestTrackPostCreationWithoutHashtags(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Bea")

	err := f.svc.TrackPostCreation(context.Background(), actor, f.node.Generate(),
		"No tags in this one")
	require.NoError(t, err)

	assert.Len(t, f.eventsOfKind(t, domain.KindPostCreate), 1)
	assert.Empty(t, f.eventsOfKind(t, domain.KindHashtagUse))
}

func TestTrackPostCreationTruncatesPreview(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Cal")
	content := strings.Repeat("x", 150)

	require.NoError(t, f.svc.TrackPostCreation(context.Background(), actor, f.node.Generate(), content))

	posts := f.eventsOfKind(t, domain.KindPostCreate)
	require.Len(t, posts, 1)
	previewValue, _ := posts[0].Payload["preview"].(string)
	assert.Len(t, previewValue, 100)
}

func TestTrackHelpersSetKindAndPayload(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Dee")

	require.NoError(t, f.svc.TrackProfileUpdate(context.Background(), actor, []string{"bio", "avatar_url"}))
	require.NoError(t, f.svc.TrackSkillAdd(context.Background(), actor, "first aid"))
	require.NoError(t, f.svc.TrackVerification(context.Background(), actor, "verified"))
	require.NoError(t, f.svc.TrackServiceCreation(context.Background(), actor, f.node.Generate(),
		"service_request", "Food drive volunteers"))

	profile := f.eventsOfKind(t, domain.KindProfileUpdate)
	require.Len(t, profile, 1)
	require.NotNil(t, profile[0].EntityType)
	assert.Equal(t, domain.EntityUser, *profile[0].EntityType)

	skills := f.eventsOfKind(t, domain.KindSkillAdd)
	require.Len(t, skills, 1)
	assert.Equal(t, "first aid", skills[0].Payload["skill"])

	verifications := f.eventsOfKind(t, domain.KindVerification)
	require.Len(t, verifications, 1)
	assert.Equal(t, "verified", verifications[0].Payload["status"])

	services := f.eventsOfKind(t, domain.KindServiceCreate)
	require.Len(t, services, 1)
	require.NotNil(t, services[0].EntityType)
	assert.Equal(t, domain.EntityServiceRequest, *services[0].EntityType)
	assert.Equal(t, "Food drive volunteers", services[0].Payload["title"])
}

func TestRecentReturnsPublicEventsNewestFirst(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Eve")
	entityType := domain.EntityUser

	base := f.clk.Now()
	for i, visibility := range []domain.Visibility{
		domain.VisibilityPublic,
		domain.VisibilityPrivate,
		domain.VisibilityPublic,
	} {
		_, err := f.svc.Append(context.Background(), &domain.ActivityEvent{
			ActorID:    actor,
			Kind:       domain.KindProfileUpdate,
			EntityType: &entityType,
			Visibility: visibility,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	items, err := f.svc.Recent(context.Background(), 10, time.Time{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
	assert.Equal(t, "Eve", items[0].ActorName)
	assert.Equal(t, string(sessiondomain.RoleIndividual), items[0].ActorRole)
	assert.Equal(t, "unverified", items[0].ActorVerification)
}

func TestRecentHonorsSinceAndLimit(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Fay")
	entityType := domain.EntityUser

	base := f.clk.Now()
	for i := 0; i < 5; i++ {
		_, err := f.svc.Append(context.Background(), &domain.ActivityEvent{
			ActorID:    actor,
			Kind:       domain.KindProfileUpdate,
			EntityType: &entityType,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	items, err := f.svc.Recent(context.Background(), 2, time.Time{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = f.svc.Recent(context.Background(), 10, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPruneDeletesOnlyOldEvents(t *testing.T) {
	f := newFixture(t)
	actor := f.createUser(t, "Gil")
	now := f.clk.Now()

	for _, age := range []time.Duration{40 * 24 * time.Hour, 31 * 24 * time.Hour, time.Hour} {
		_, err := f.svc.Append(context.Background(), &domain.ActivityEvent{
			ActorID:   actor,
			Kind:      domain.KindSkillAdd,
			CreatedAt: now.Add(-age),
		})
		require.NoError(t, err)
	}

	deleted, err := f.svc.Prune(context.Background(), now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining int64
	require.NoError(t, f.db.Model(&domain.ActivityEvent{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	deleted, err = f.svc.Prune(context.Background(), now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
