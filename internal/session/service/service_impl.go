package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/clock"
	"github.com/impactlink/engage/internal/config"
	obsmetrics "github.com/impactlink/engage/internal/observability/metrics"
	"github.com/impactlink/engage/internal/session/device"
	"github.com/impactlink/engage/internal/session/domain"
	"github.com/impactlink/engage/internal/session/token"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const touchTimeout = 2 * time.Second

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     domain.Repository
	Attempts domain.AttemptRepository
	Codec    *token.Codec
	Users    userdomain.Service
	Clock    clock.Clock
	GenID    *snowflake.Node
	Config   config.Config
}

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	attempts domain.AttemptRepository
	codec    *token.Codec
	users    userdomain.Service
	clock    clock.Clock
	genID    *snowflake.Node

	ttl       time.Duration
	retention time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("session.service"),
		repo:      p.Repo,
		attempts:  p.Attempts,
		codec:     p.Codec,
		users:     p.Users,
		clock:     p.Clock,
		genID:     p.GenID,
		ttl:       p.Config.SessionTTL,
		retention: p.Config.SessionRetention,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResult, error) {
	now := s.clock.Now()
	desc := device.Parse(req.UserAgent)
	ip := device.ClientIP(req.XForwardedFor, req.XRealIP, req.RemoteAddr)

	session := &domain.Session{
		ID:             s.genID.Generate(),
		UserID:         req.UserID,
		UserRole:       req.Role,
		Email:          strings.TrimSpace(req.Email),
		DisplayName:    strings.TrimSpace(req.DisplayName),
		Browser:        desc.Browser,
		OS:             desc.OS,
		FormFactor:     desc.FormFactor,
		IsMobile:       desc.Mobile,
		IPAddress:      ip,
		Active:         true,
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
		LastActivityAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	sessionID := session.ID
	if err := s.attempts.Record(ctx, &domain.LoginAttempt{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		SessionID: &sessionID,
		IPAddress: ip,
		UserAgent: req.UserAgent,
		Outcome:   domain.AttemptSuccess,
		CreatedAt: now,
	}); err != nil {
		// Audit trail only; a missing row must not fail the login.
		s.log.Warn("record login attempt failed", zap.Error(err))
	}

	if err := s.users.UpdateLastLogin(ctx, req.UserID, now); err != nil {
		s.log.Warn("update last login failed",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err),
		)
	}

	raw, err := s.codec.Issue(session.ID, req.UserID, req.Role, session.Email, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	obsmetrics.Default().IncSessionCreated()
	return &domain.CreateResult{
		SessionID: session.ID,
		Token:     raw,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Validate(ctx context.Context, rawToken string) (*domain.SessionData, error) {
	claims, err := s.codec.Parse(rawToken)
	if err != nil {
		// Reason stays in the diagnostic log only; the caller sees the
		// same nil it would for a revoked or expired session.
		s.log.Debug("token rejected", zap.Error(err))
		obsmetrics.Default().IncValidate("invalid_token")
		return nil, nil
	}

	session, err := s.repo.FindValid(ctx, claims.SessionID, claims.UserID, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Debug("session rejected",
				zap.String("session_id", claims.SessionID.String()),
			)
			obsmetrics.Default().IncValidate("unauthenticated")
			return nil, nil
		}
		obsmetrics.Default().IncValidate("storage_error")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.touchAsync(session.ID)

	obsmetrics.Default().IncValidate("ok")
	return &domain.SessionData{
		SessionID:   session.ID,
		UserID:      session.UserID,
		Role:        session.UserRole,
		Email:       session.Email,
		DisplayName: session.DisplayName,
	}, nil
}

// touchAsync updates last_activity_at off the request path. The caller
// never waits on, or hears about, this write.
func (s *Service) touchAsync(sessionID snowflake.ID) {
	at := s.clock.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
		defer cancel()
		if err := s.repo.TouchLastActivity(ctx, sessionID, at); err != nil {
			s.log.Debug("last activity touch failed",
				zap.String("session_id", sessionID.String()),
				zap.Error(err),
			)
		}
	}()
}

func (s *Service) Revoke(ctx context.Context, sessionID snowflake.ID) error {
	if err := s.repo.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	obsmetrics.Default().IncSessionRevoked()
	return nil
}

func (s *Service) RevokeAll(ctx context.Context, userID snowflake.ID) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	obsmetrics.Default().IncSessionRevoked()
	return nil
}

func (s *Service) ListActive(ctx context.Context, userID snowflake.ID) ([]domain.SessionView, error) {
	sessions, err := s.repo.ListActive(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	views := make([]domain.SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, domain.SessionView{
			SessionID:      session.ID,
			Browser:        session.Browser,
			OS:             session.OS,
			FormFactor:     session.FormFactor,
			IsMobile:       session.IsMobile,
			IPAddress:      session.IPAddress,
			CreatedAt:      session.CreatedAt,
			LastActivityAt: session.LastActivityAt,
		})
	}
	return views, nil
}

func (s *Service) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteStale(ctx, s.clock.Now(), s.retention)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if deleted > 0 {
		s.log.Info("pruned stale sessions", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func (s *Service) RecordFailedLogin(ctx context.Context, userID snowflake.ID, userAgent, ipAddress string) error {
	return s.attempts.Record(ctx, &domain.LoginAttempt{
		ID:        s.genID.Generate(),
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Outcome:   domain.AttemptFailed,
		CreatedAt: s.clock.Now(),
	})
}
