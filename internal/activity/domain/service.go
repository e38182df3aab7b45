package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Append records one event. Missing optional entity fields are
	// fine; only storage unavailability fails an append.
	Append(ctx context.Context, event *ActivityEvent) (snowflake.ID, error)

	TrackProfileUpdate(ctx context.Context, userID snowflake.ID, updatedFields []string) error
	// TrackPostCreation records the post event, then emits one
	// hashtag_use event per distinct extracted tag and bumps each
	// tag's counters. Tag side effects are best-effort; the post
	// event survives their failure.
	TrackPostCreation(ctx context.Context, userID, postID snowflake.ID, content string) error
	TrackSkillAdd(ctx context.Context, userID snowflake.ID, skillName string) error
	TrackVerification(ctx context.Context, userID snowflake.ID, newStatus string) error
	TrackServiceCreation(ctx context.Context, userID, serviceID snowflake.ID, serviceKind, title string) error

	Recent(ctx context.Context, limit int, since time.Time) ([]FeedItem, error)
	// Prune deletes events older than the retention cutoff.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
