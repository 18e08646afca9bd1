package adapters

import (
	"time"

	"gorm.io/gorm"

	"auction_backend/internal/feature/auth/domain/entity"
)

// SessionRow is one refresh session in the sessions table. ID holds the
// 64-character hex refresh token.
type SessionRow struct {
	ID        string     `gorm:"primaryKey;size:64"`
	UserID    uint       `gorm:"not null;index:idx_sessions_user_live,priority:1"`
	UserAgent string     `gorm:"size:512"`
	IPAddress string     `gorm:"size:45"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null;index;index:idx_sessions_user_live,priority:2"`
	RevokedAt *time.Time `gorm:"index"`
}

// TableName pins the table name.
func (SessionRow) TableName() string {
	return "sessions"
}

func (m *SessionRow) toEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}
}

func sessionRowFrom(s *entity.Session) *SessionRow {
	return &SessionRow{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}

// liveSessions restricts a query to the user's unrevoked, unexpired sessions.
func liveSessions(userID uint, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now)
	}
}
