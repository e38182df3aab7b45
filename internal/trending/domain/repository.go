package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// IncrementMentions upserts the tag row and bumps all three
	// counters by one. The increment happens in the database so that
	// concurrent mentions of the same tag never lose updates.
	IncrementMentions(ctx context.Context, id snowflake.ID, tag string, now time.Time) error
	UpdateScores(ctx context.Context, updates []ScoreUpdate, now time.Time) error
	FindByTag(ctx context.Context, tag string) (*Hashtag, error)
	TopTrending(ctx context.Context, limit int) ([]Hashtag, error)
}

// UsageSource reads hashtag_use occurrences from the activity ledger.
type UsageSource interface {
	HashtagUsagesSince(ctx context.Context, since time.Time) ([]TagUsage, error)
}
