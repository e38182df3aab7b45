package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/clock"
	obsmetrics "github.com/impactlink/engage/internal/observability/metrics"
	"github.com/impactlink/engage/internal/trending/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dailyWeight  = 3.0
	weeklyWeight = 1.5

	trendingDailyThreshold  = 2
	trendingWeeklyThreshold = 10
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Repo   domain.Repository
	Usages domain.UsageSource
	Clock  clock.Clock
	GenID  *snowflake.Node
}

type Service struct {
	log    *zap.Logger
	repo   domain.Repository
	usages domain.UsageSource
	clock  clock.Clock
	genID  *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("trending.service"),
		repo:   p.Repo,
		usages: p.Usages,
		clock:  p.Clock,
		genID:  p.GenID,
	}
}

func (s *Service) Touch(ctx context.Context, tag string) error {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil
	}
	if err := s.repo.IncrementMentions(ctx, s.genID.Generate(), tag, s.clock.Now()); err != nil {
		return err
	}
	obsmetrics.Default().IncHashtagIncrement()
	return nil
}

// Recompute rescores tags from ledger usage inside the trailing week.
// Tags with zero usage in the window keep their last-computed score and
// flag; the pass never writes rows it did not see.
func (s *Service) Recompute(ctx context.Context) error {
	now := s.clock.Now()
	oneDayAgo := now.Add(-24 * time.Hour)
	oneWeekAgo := now.Add(-7 * 24 * time.Hour)

	usages, err := s.usages.HashtagUsagesSince(ctx, oneWeekAgo)
	if err != nil {
		return err
	}
	if len(usages) == 0 {
		return nil
	}

	daily := make(map[string]int64)
	weekly := make(map[string]int64)
	for _, usage := range usages {
		weekly[usage.Tag]++
		if !usage.CreatedAt.Before(oneDayAgo) {
			daily[usage.Tag]++
		}
	}

	updates := make([]domain.ScoreUpdate, 0, len(weekly))
	for tag, weekCount := range weekly {
		dayCount := daily[tag]
		updates = append(updates, domain.ScoreUpdate{
			Tag:            tag,
			DailyMentions:  dayCount,
			WeeklyMentions: weekCount,
			TrendingScore:  float64(dayCount)*dailyWeight + float64(weekCount)*weeklyWeight,
			IsTrending:     dayCount >= trendingDailyThreshold || weekCount >= trendingWeeklyThreshold,
		})
	}

	if err := s.repo.UpdateScores(ctx, updates, now); err != nil {
		return err
	}
	s.log.Info("trending scores recomputed", zap.Int("tags", len(updates)))
	return nil
}

func (s *Service) TopTrending(ctx context.Context, limit int) ([]domain.Hashtag, error) {
	return s.repo.TopTrending(ctx, limit)
}
