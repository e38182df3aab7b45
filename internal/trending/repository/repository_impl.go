package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/trending/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) IncrementMentions(ctx context.Context, id snowflake.ID, tag string, now time.Time) error {
	row := domain.Hashtag{
		ID:             id,
		Tag:            tag,
		TotalMentions:  1,
		WeeklyMentions: 1,
		DailyMentions:  1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tag"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_mentions":  gorm.Expr("total_mentions + 1"),
			"weekly_mentions": gorm.Expr("weekly_mentions + 1"),
			"daily_mentions":  gorm.Expr("daily_mentions + 1"),
			"updated_at":      now,
		}),
	}).Create(&row).Error
}

func (r *repo) UpdateScores(ctx context.Context, updates []domain.ScoreUpdate, now time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			err := tx.Model(&domain.Hashtag{}).
				Where("tag = ?", update.Tag).
				Updates(map[string]any{
					"daily_mentions":  update.DailyMentions,
					"weekly_mentions": update.WeeklyMentions,
					"trending_score":  update.TrendingScore,
					"is_trending":     update.IsTrending,
					"updated_at":      now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindByTag(ctx context.Context, tag string) (*domain.Hashtag, error) {
	var row domain.Hashtag
	err := r.db.WithContext(ctx).Where("tag = ?", tag).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrHashtagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repo) TopTrending(ctx context.Context, limit int) ([]domain.Hashtag, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []domain.Hashtag
	err := r.db.WithContext(ctx).
		Order("trending_score DESC, total_mentions DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
