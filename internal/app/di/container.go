// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"auction_backend/internal/app/router"
	auctionadapters "auction_backend/internal/feature/auction/adapters"
	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	auctionusecase "auction_backend/internal/feature/auction/usecase"
	authadapters "auction_backend/internal/feature/auth/adapters"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	authusecase "auction_backend/internal/feature/auth/usecase"
	catalogadapters "auction_backend/internal/feature/catalog/adapters"
	cataloghandler "auction_backend/internal/feature/catalog/transport/handler"
	catalogusecase "auction_backend/internal/feature/catalog/usecase"
	engagementadapters "auction_backend/internal/feature/engagement/adapters"
	engagementhandler "auction_backend/internal/feature/engagement/transport/handler"
	engagementusecase "auction_backend/internal/feature/engagement/usecase"
	profileadapters "auction_backend/internal/feature/profile/adapters"
	profilehandler "auction_backend/internal/feature/profile/transport/handler"
	profileusecase "auction_backend/internal/feature/profile/usecase"
	"auction_backend/internal/platform/cache"
	"auction_backend/internal/platform/config"
	platformhandler "auction_backend/internal/platform/http/handler"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/shared/ratelimiter"
)

// Container holds the assembled application.
type Container struct {
	Router *gin.Engine
	Auth   *authusecase.AuthUsecase

	// localLimiter is set when rate limiting runs in process and needs sweeping.
	localLimiter *ratelimiter.RateLimiter
}

// Build wires repositories, usecases and handlers. rdb may be nil, in which
// case sessions live in SQL, categories are not cached and rate limits are
// kept in process.
func Build(ctx context.Context, cfg config.Config, gdb *gorm.DB, rdb *redis.Client) (*Container, error) {
	if gdb == nil {
		return nil, errors.New("di: database is required")
	}

	// Repository
	categories := cache.NewCachingCategoryRepository(rdb, cfg.CategoryCacheTTL, catalogadapters.NewCategoryRepository(gdb), "categories")
	listings := catalogadapters.NewListingRepository(gdb)
	users := authadapters.NewUserRepository(gdb)
	sessions := NewSessionRepository(rdb, gdb)

	if cfg.SeedCategories {
		if err := SeedCategories(ctx, categories); err != nil {
			return nil, err
		}
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, sessions, jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL), authusecase.Options{
		AccessTokenTTL:     cfg.AccessTokenTTL,
		RefreshTokenTTL:    cfg.RefreshTokenTTL,
		MaxSessionsPerUser: cfg.MaxSessionsPerUser,
	})
	profileUC := profileusecase.NewProfileUsecase(profileadapters.NewProfileRepository(gdb))
	catalogUC := catalogusecase.NewCatalogUsecase(categories, listings)
	auctionUC := auctionusecase.NewAuctionUsecase(auctionadapters.NewAuctionStore(gdb))
	commentUC := engagementusecase.NewCommentUsecase(listings, engagementadapters.NewCommentRepository(gdb))
	watchlistUC := engagementusecase.NewWatchlistUsecase(listings, engagementadapters.NewWatchlistRepository(gdb))

	// Handler
	handlers := router.Handlers{
		Health:    platformhandler.NewHealthHandler(healthChecks(gdb, rdb)...),
		Auth:      authhandler.NewAuthHandler(authUC),
		Profile:   profilehandler.NewProfileHandler(profileUC),
		Catalog:   cataloghandler.NewCatalogHandler(catalogUC),
		Auction:   auctionhandler.NewAuctionHandler(auctionUC),
		Comment:   engagementhandler.NewCommentHandler(commentUC),
		Watchlist: engagementhandler.NewWatchlistHandler(watchlistUC),
	}

	c := &Container{Auth: authUC}
	opts := router.Options{JWTSecret: cfg.JWTSecret, CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimitPerMinute > 0 {
		if rdb != nil {
			opts.Limiter = ratelimiter.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "ratelimit")
		} else {
			c.localLimiter = ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
			opts.Limiter = c.localLimiter
		}
	}
	c.Router = router.NewRouter(handlers, opts)
	return c, nil
}

func healthChecks(gdb *gorm.DB, rdb *redis.Client) []platformhandler.Check {
	checks := []platformhandler.Check{{
		Name: "database",
		Ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}

// RunMaintenance purges expired sessions and stale rate-limit windows every
// interval until ctx is done.
func (c *Container) RunMaintenance(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.maintain(ctx)
		}
	}
}

func (c *Container) maintain(ctx context.Context) {
	n, err := c.Auth.PurgeExpiredSessions(ctx)
	if err != nil {
		log.WithError(err).Warn("session purge failed")
	} else if n > 0 {
		log.WithField("removed", n).Info("expired sessions purged")
	}
	if c.localLimiter != nil {
		c.localLimiter.Sweep()
	}
}
