package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/activity/domain"
	"github.com/impactlink/engage/internal/clock"
	"github.com/impactlink/engage/internal/hashtag"
	obsmetrics "github.com/impactlink/engage/internal/observability/metrics"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const previewRunes = 100

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     domain.Repository
	Trending trendingdomain.Service
	Clock    clock.Clock
	GenID    *snowflake.Node
}

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	trending trendingdomain.Service
	clock    clock.Clock
	genID    *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("activity.service"),
		repo:     p.Repo,
		trending: p.Trending,
		clock:    p.Clock,
		genID:    p.GenID,
	}
}

func (s *Service) Append(ctx context.Context, event *domain.ActivityEvent) (snowflake.ID, error) {
	if event.ID == 0 {
		event.ID = s.genID.Generate()
	}
	if event.Visibility == "" {
		event.Visibility = domain.VisibilityPublic
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.clock.Now()
	}
	if err := s.repo.Append(ctx, event); err != nil {
		return 0, fmt.Errorf("append %s event: %w", event.Kind, err)
	}
	obsmetrics.Default().IncLedgerAppend(string(event.Kind))
	return event.ID, nil
}

func (s *Service) TrackProfileUpdate(ctx context.Context, userID snowflake.ID, updatedFields []string) error {
	entityType := domain.EntityUser
	entityID := userID
	_, err := s.Append(ctx, &domain.ActivityEvent{
		ActorID:    userID,
		Kind:       domain.KindProfileUpdate,
		EntityType: &entityType,
		EntityID:   &entityID,
		Payload:    datatypes.JSONMap{"updated_fields": updatedFields},
	})
	return err
}

func (s *Service) TrackPostCreation(ctx context.Context, userID, postID snowflake.ID, content string) error {
	tags := hashtag.Extract(content)
	entityType := domain.EntityPost

	_, err := s.Append(ctx, &domain.ActivityEvent{
		ActorID:    userID,
		Kind:       domain.KindPostCreate,
		EntityType: &entityType,
		EntityID:   &postID,
		Payload: datatypes.JSONMap{
			"preview":  preview(content),
			"hashtags": tags,
		},
	})
	if err != nil {
		return err
	}

	// Tag fan-out is best-effort: the post event is already recorded
	// and must not be rolled back by a counter failure.
	for _, tag := range tags {
		if _, err := s.Append(ctx, &domain.ActivityEvent{
			ActorID:    userID,
			Kind:       domain.KindHashtagUse,
			EntityType: &entityType,
			EntityID:   &postID,
			Payload:    datatypes.JSONMap{"tag": tag},
		}); err != nil {
			s.log.Warn("hashtag_use append failed",
				zap.String("tag", tag),
				zap.Error(err),
			)
			continue
		}
		if err := s.trending.Touch(ctx, tag); err != nil {
			s.log.Warn("hashtag counter update failed",
				zap.String("tag", tag),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) TrackSkillAdd(ctx context.Context, userID snowflake.ID, skillName string) error {
	entityType := domain.EntitySkill
	_, err := s.Append(ctx, &domain.ActivityEvent{
		ActorID:    userID,
		Kind:       domain.KindSkillAdd,
		EntityType: &entityType,
		Payload:    datatypes.JSONMap{"skill": skillName},
	})
	return err
}

func (s *Service) TrackVerification(ctx context.Context, userID snowflake.ID, newStatus string) error {
	entityType := domain.EntityUser
	entityID := userID
	_, err := s.Append(ctx, &domain.ActivityEvent{
		ActorID:    userID,
		Kind:       domain.KindVerification,
		EntityType: &entityType,
		EntityID:   &entityID,
		Payload:    datatypes.JSONMap{"status": newStatus},
	})
	return err
}

func (s *Service) TrackServiceCreation(ctx context.Context, userID, serviceID snowflake.ID, serviceKind, title string) error {
	entityType := domain.EntityServiceOffer
	if serviceKind == string(domain.EntityServiceRequest) {
		entityType = domain.EntityServiceRequest
	}
	_, err := s.Append(ctx, &domain.ActivityEvent{
		ActorID:    userID,
		Kind:       domain.KindServiceCreate,
		EntityType: &entityType,
		EntityID:   &serviceID,
		Payload: datatypes.JSONMap{
			"kind":  serviceKind,
			"title": title,
		},
	})
	return err
}

func (s *Service) Recent(ctx context.Context, limit int, since time.Time) ([]domain.FeedItem, error) {
	return s.repo.Recent(ctx, limit, since)
}

func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Info("pruned activity events", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes])
}
