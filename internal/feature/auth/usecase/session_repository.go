package usecase

import (
	"context"

	"auction_backend/internal/feature/auth/domain/entity"
)

// SessionRepository stores refresh sessions. Implementations exist for the
// relational store and for Redis; both treat the session ID as the opaque
// refresh token.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	// FindByID returns ErrSessionNotFound for unknown tokens. Revoked
	// sessions are still returned so callers can detect reuse.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke is a no-op on an already revoked session.
	Revoke(ctx context.Context, id string) error

	// RevokeIfLive revokes the session only if it is not revoked yet and
	// reports whether this call made the transition. Refresh relies on it so
	// that one token can be rotated at most once.
	RevokeIfLive(ctx context.Context, id string) (bool, error)
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired reports how many sessions were removed.
	DeleteExpired(ctx context.Context) (int64, error)

	CountByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
