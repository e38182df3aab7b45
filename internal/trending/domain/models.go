// Package domain contains core types for the hashtag trending engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Hashtag is a derived aggregate: the trending engine alone mutates its
// counter and score fields.
type Hashtag struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Tag            string       `gorm:"column:tag;type:text;not null;uniqueIndex" json:"tag"`
	TotalMentions  int64        `gorm:"column:total_mentions;not null;default:0" json:"total_mentions"`
	WeeklyMentions int64        `gorm:"column:weekly_mentions;not null;default:0" json:"weekly_mentions"`
	DailyMentions  int64        `gorm:"column:daily_mentions;not null;default:0" json:"daily_mentions"`
	TrendingScore  float64      `gorm:"column:trending_score;not null;default:0" json:"trending_score"`
	IsTrending     bool         `gorm:"column:is_trending;not null;default:false" json:"is_trending"`
	CreatedAt      time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Hashtag) TableName() string { return "hashtags" }

// TagUsage is one hashtag_use occurrence read back from the ledger.
type TagUsage struct {
	Tag       string
	CreatedAt time.Time
}

// ScoreUpdate carries recomputed window counts for one tag.
type ScoreUpdate struct {
	Tag            string
	DailyMentions  int64
	WeeklyMentions int64
	TrendingScore  float64
	IsTrending     bool
}
