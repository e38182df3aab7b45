package domain

import "context"

type Service interface {
	// Touch increments the tag's counters. Called once per tag per
	// hashtag_use event; O(1), never recomputes the score inline.
	Touch(ctx context.Context, tag string) error
	// Recompute rescores every tag used inside the trailing 7-day
	// window. Tags with no usage in the window are left untouched.
	Recompute(ctx context.Context) error
	TopTrending(ctx context.Context, limit int) ([]Hashtag, error)
}
