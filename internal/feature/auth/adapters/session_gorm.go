package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
)

// sessionGorm stores refresh sessions in the relational sessions table.
// It is the fallback when Redis is not configured.
type sessionGorm struct {
	db *gorm.DB
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionRepository creates a relational session repository.
func NewSessionRepository(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(sessionRowFrom(session)).Error
}

// FindByID retrieves a session by its refresh token ID.
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var row SessionRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return row.toEntity(), nil
}

// RevokeIfLive revokes the session and reports whether this call did it.
// The update is conditional on revoked_at being NULL, so of two concurrent
// callers only one sees true.
func (r *sessionGorm) RevokeIfLive(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&SessionRow{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// Revoke marks a session revoked. An already revoked session keeps its
// original revocation time.
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	_, err := r.RevokeIfLive(ctx, id)
	return err
}

// RevokeAllByUserID revokes all sessions for a given user.
func (r *sessionGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&SessionRow{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired removes sessions past their expiry, revoked or not.
func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&SessionRow{})
	return result.RowsAffected, result.Error
}

// CountByUserID returns the number of live sessions for a user.
func (r *sessionGorm) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SessionRow{}).
		Scopes(liveSessions(userID, time.Now())).
		Count(&count).Error
	return count, err
}

// DeleteOldestByUserID deletes the oldest live session of a user.
func (r *sessionGorm) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldest SessionRow
		err := tx.Scopes(liveSessions(userID, time.Now())).
			Order("created_at ASC").
			Take(&oldest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Delete(&SessionRow{}, "id = ?", oldest.ID).Error
	})
}
