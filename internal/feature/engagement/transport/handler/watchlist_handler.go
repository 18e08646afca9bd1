package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	catalog "auction_backend/internal/feature/catalog/domain/entity"
	catalogdto "auction_backend/internal/feature/catalog/transport/http/dto"
	"auction_backend/internal/feature/engagement/transport/http/dto"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
)

// WatchlistUsecase is the watchlist behaviour the handler needs.
type WatchlistUsecase interface {
	Add(ctx context.Context, userID, listingID uint) error
	Remove(ctx context.Context, userID, listingID uint) error
	List(ctx context.Context, userID uint) ([]catalog.Listing, error)
	IsWatching(ctx context.Context, userID, listingID uint) (bool, error)
}

// WatchlistHandler handles watchlist requests. All routes require authentication.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a WatchlistHandler.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List handles GET /watchlist.
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	listings, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, "list_watchlist", err, log.Fields{"user_id": userID})
		return
	}
	c.JSON(http.StatusOK, catalogdto.NewListingResponses(listings))
}

// Status handles GET /watchlist/:listingId.
func (h *WatchlistHandler) Status(c *gin.Context) {
	userID, listingID, ok := h.params(c)
	if !ok {
		return
	}
	watching, err := h.uc.IsWatching(c.Request.Context(), userID, listingID)
	if err != nil {
		respond.Error(c, "watchlist_status", err, log.Fields{"user_id": userID, "listing_id": listingID})
		return
	}
	c.JSON(http.StatusOK, dto.WatchingResponse{ListingID: listingID, Watching: watching})
}

// Add handles PUT /watchlist/:listingId.
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, listingID, ok := h.params(c)
	if !ok {
		return
	}
	if err := h.uc.Add(c.Request.Context(), userID, listingID); err != nil {
		respond.Error(c, "watchlist_add", err, log.Fields{"user_id": userID, "listing_id": listingID})
		return
	}
	c.JSON(http.StatusOK, dto.WatchingResponse{ListingID: listingID, Watching: true})
}

// Remove handles DELETE /watchlist/:listingId.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, listingID, ok := h.params(c)
	if !ok {
		return
	}
	if err := h.uc.Remove(c.Request.Context(), userID, listingID); err != nil {
		respond.Error(c, "watchlist_remove", err, log.Fields{"user_id": userID, "listing_id": listingID})
		return
	}
	c.JSON(http.StatusOK, dto.WatchingResponse{ListingID: listingID, Watching: false})
}

func (h *WatchlistHandler) params(c *gin.Context) (userID, listingID uint, ok bool) {
	if userID, ok = jwtmw.RequireUserID(c); !ok {
		return 0, 0, false
	}
	if listingID, ok = respond.IDParam(c, "listingId"); !ok {
		return 0, 0, false
	}
	return userID, listingID, true
}
