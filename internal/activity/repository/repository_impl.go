package repository

import (
	"context"
	"time"

	"github.com/impactlink/engage/internal/activity/domain"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) (domain.Repository, trendingdomain.UsageSource) {
	r := &repo{db: db}
	return r, r
}

func (r *repo) Append(ctx context.Context, event *domain.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repo) Recent(ctx context.Context, limit int, since time.Time) ([]domain.FeedItem, error) {
	if limit <= 0 {
		limit = 20
	}
	query := r.db.WithContext(ctx).
		Table("activity_events").
		Select(`activity_events.id,
			activity_events.actor_id,
			users.display_name AS actor_name,
			users.avatar_url AS actor_avatar_url,
			users.role AS actor_role,
			users.verification_status AS actor_verification,
			activity_events.kind,
			activity_events.entity_type,
			activity_events.entity_id,
			activity_events.payload,
			activity_events.created_at`).
		Joins("JOIN users ON users.id = activity_events.actor_id").
		Where("activity_events.visibility = ?", domain.VisibilityPublic)
	if !since.IsZero() {
		query = query.Where("activity_events.created_at > ?", since)
	}

	var items []domain.FeedItem
	err := query.Order("activity_events.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.ActivityEvent{})
	return tx.RowsAffected, tx.Error
}

// HashtagUsagesSince feeds the trending recompute pass. The tag lives in
// the event payload, so extraction happens here rather than in SQL; the
// result is identical across dialects.
func (r *repo) HashtagUsagesSince(ctx context.Context, since time.Time) ([]trendingdomain.TagUsage, error) {
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("kind = ? AND created_at >= ?", domain.KindHashtagUse, since).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	usages := make([]trendingdomain.TagUsage, 0, len(events))
	for _, event := range events {
		tag, _ := event.Payload["tag"].(string)
		if tag == "" {
			continue
		}
		usages = append(usages, trendingdomain.TagUsage{
			Tag:       tag,
			CreatedAt: event.CreatedAt,
		})
	}
	return usages, nil
}
