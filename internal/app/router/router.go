// Package router assembles the gin engine and its routes.
package router

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	cataloghandler "auction_backend/internal/feature/catalog/transport/handler"
	engagementhandler "auction_backend/internal/feature/engagement/transport/handler"
	profilehandler "auction_backend/internal/feature/profile/transport/handler"
	platformhandler "auction_backend/internal/platform/http/handler"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/platform/middleware"
	"auction_backend/internal/shared/ratelimiter"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Auth      *authhandler.AuthHandler
	Profile   *profilehandler.ProfileHandler
	Catalog   *cataloghandler.CatalogHandler
	Auction   *auctionhandler.AuctionHandler
	Comment   *engagementhandler.CommentHandler
	Watchlist *engagementhandler.WatchlistHandler
}

// Options holds the cross-cutting settings of the router.
type Options struct {
	JWTSecret          string
	CORSAllowedOrigins []string
	// Limiter throttles bids and comments per user. Nil disables it.
	Limiter ratelimiter.Limiter
}

// NewRouter builds the engine with every route of the API.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	throttle := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		throttle = ratelimiter.Middleware(opts.Limiter, func(c *gin.Context) string {
			if id, ok := jwtmw.UserID(c); ok {
				return strconv.FormatUint(uint64(id), 10)
			}
			return ""
		})
	}

	// Public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)

	r.GET("/categories", h.Catalog.ListCategories)
	r.GET("/categories/:id/listings", h.Catalog.ListByCategory)
	r.GET("/listings", h.Catalog.ListActive)
	r.GET("/listings/:id", h.Catalog.GetListing)
	r.GET("/listings/:id/bids", h.Auction.ListBids)
	r.GET("/listings/:id/bids/highest", h.Auction.HighestBid)
	r.GET("/listings/:id/comments", h.Comment.List)

	// Bearer JWT required
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.POST("/logout", h.Auth.Logout)

		auth.GET("/profile", h.Profile.Get)
		auth.PUT("/profile", h.Profile.Update)
		auth.PUT("/profile/email", h.Auth.ChangeEmail)
		auth.PUT("/profile/password", h.Auth.ChangePassword)
		auth.GET("/profile/listings", h.Catalog.ListMine)
		auth.GET("/profile/won", h.Catalog.ListWon)

		auth.POST("/listings", h.Catalog.CreateListing)
		auth.DELETE("/listings/:id", h.Catalog.DeleteListing)
		auth.POST("/listings/:id/deactivate", h.Auction.Deactivate)
		auth.POST("/listings/:id/activate", h.Auction.Activate)
		auth.POST("/listings/:id/close", h.Auction.Close)
		auth.POST("/listings/:id/bids", throttle, h.Auction.PlaceBid)
		auth.POST("/listings/:id/comments", throttle, h.Comment.Add)
		auth.PUT("/comments/:id/reply", throttle, h.Comment.Reply)

		auth.GET("/watchlist", h.Watchlist.List)
		auth.GET("/watchlist/:listingId", h.Watchlist.Status)
		auth.PUT("/watchlist/:listingId", h.Watchlist.Add)
		auth.DELETE("/watchlist/:listingId", h.Watchlist.Remove)
	}

	return r
}
