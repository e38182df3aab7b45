package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/session/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) (domain.Repository, domain.AttemptRepository) {
	r := &repo{db: db}
	return r, r
}

func (r *repo) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repo) FindValid(ctx context.Context, sessionID, userID snowflake.ID, now time.Time) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND active = ? AND expires_at > ?", sessionID, userID, true, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repo) TouchLastActivity(ctx context.Context, sessionID snowflake.ID, at time.Time) error {
	tx := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", sessionID).
		Update("last_activity_at", at)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *repo) Revoke(ctx context.Context, sessionID snowflake.ID) error {
	// Zero rows affected means already revoked or never existed; both
	// are fine, revoke is idempotent.
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", sessionID).
		Update("active", false).Error
}

func (r *repo) RevokeAllForUser(ctx context.Context, userID snowflake.ID) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false).Error
}

func (r *repo) ListActive(ctx context.Context, userID snowflake.ID, now time.Time) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ? AND expires_at > ?", userID, true, now).
		Order("last_activity_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repo) DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	cutoff := now.Add(-retention)
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR (active = ? AND last_activity_at < ?)", now, false, cutoff).
		Delete(&domain.Session{})
	return tx.RowsAffected, tx.Error
}

func (r *repo) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}
