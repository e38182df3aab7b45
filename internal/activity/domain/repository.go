package domain

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, event *ActivityEvent) error
	// Recent returns public events, newest first, joined to actor
	// display fields. since is optional; zero means no lower bound.
	Recent(ctx context.Context, limit int, since time.Time) ([]FeedItem, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
