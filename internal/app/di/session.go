package di

import (
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authadapters "auction_backend/internal/feature/auth/adapters"
	"auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/platform/session"
)

const sessionKeyPrefix = "session"

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the sessions table.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		log.Info("using redis session store")
		return session.NewSessionRedis(rdb, sessionKeyPrefix)
	}
	log.Info("redis unavailable, using sql session store")
	return authadapters.NewSessionRepository(db)
}
