// Package scheduler runs the periodic maintenance jobs: session sweep,
// activity pruning and trending recompute.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	activitydomain "github.com/impactlink/engage/internal/activity/domain"
	"github.com/impactlink/engage/internal/clock"
	"github.com/impactlink/engage/internal/config"
	obsmetrics "github.com/impactlink/engage/internal/observability/metrics"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

// JobLocker guards a job against overlapping runs across replicas.
type JobLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Release(ctx context.Context, key, token string) error
}

type Params struct {
	fx.In

	Log         *zap.Logger
	SessionSvc  sessiondomain.Service
	ActivitySvc activitydomain.Service
	TrendingSvc trendingdomain.Service
	Clock       clock.Clock
	AppConfig   config.Config
	Config      Config  `optional:"true"`
	Locker      *Locker `optional:"true"`
}

type Scheduler struct {
	log         *zap.Logger
	cfg         Config
	clock       clock.Clock
	locker      JobLocker
	sessionSvc  sessiondomain.Service
	activitySvc activitydomain.Service
	trendingSvc trendingdomain.Service

	activityRetention time.Duration
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.SessionSvc == nil || p.ActivitySvc == nil || p.TrendingSvc == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	s := &Scheduler{
		log:               p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:               p.Config.withDefaults(),
		clock:             p.Clock,
		sessionSvc:        p.SessionSvc,
		activitySvc:       p.ActivitySvc,
		trendingSvc:       p.TrendingSvc,
		activityRetention: p.AppConfig.ActivityRetention,
	}
	// A nil *Locker must stay a nil interface, not a typed nil.
	if p.Locker != nil {
		s.locker = p.Locker
	}
	return s, nil
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	schedMetrics := obsmetrics.Scheduler()
	log := s.log.With(zap.String("job", name))

	if s.locker != nil {
		key := "engage:scheduler:" + name
		token, ok, err := s.locker.TryLock(ctx, key, s.cfg.LockTTL)
		if err != nil {
			schedMetrics.IncJobError(name)
			return fmt.Errorf("%s: acquire lock: %w", name, err)
		}
		if !ok {
			schedMetrics.IncJobSkip(name)
			log.Debug("job skipped, lock held elsewhere")
			return nil
		}
		defer func() {
			if err := s.locker.Release(ctx, key, token); err != nil {
				log.Warn("lock release failed", zap.Error(err))
			}
		}()
	}

	start := s.clock.Now()
	schedMetrics.IncJobRun(name)
	err := fn(ctx)
	schedMetrics.ObserveJobDuration(name, time.Since(start))
	if err == nil {
		return nil
	}

	// A deadline is a soft failure; the next tick picks the work back up.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", s.cfg.JobTimeout),
			zap.Error(err),
		)
		return nil
	}

	schedMetrics.IncJobError(name)
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name string
		Run  func(context.Context) error
	}{
		{"session_sweep", s.SessionSweepJob},
		{"activity_prune", s.ActivityPruneJob},
		{"trending_recompute", s.TrendingRecomputeJob},
	}

	for _, job := range jobs {
		if !s.isJobEnabled(job.Name) {
			continue
		}
		err = errors.Join(err, s.runJob(parent, job.Name, job.Run))
	}

	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	// Empty EnabledJobs means every job runs (monolith mode).
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if strings.EqualFold(enabled, jobName) {
			return true
		}
	}
	return false
}

func (s *Scheduler) SessionSweepJob(ctx context.Context) error {
	deleted, err := s.sessionSvc.Sweep(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("session sweep finished", zap.Int64("deleted", deleted))
	}
	return nil
}

func (s *Scheduler) ActivityPruneJob(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.activityRetention)
	_, err := s.activitySvc.Prune(ctx, cutoff)
	return err
}

func (s *Scheduler) TrendingRecomputeJob(ctx context.Context) error {
	return s.trendingSvc.Recompute(ctx)
}
