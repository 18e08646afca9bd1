// Package handler exposes bidding and the listing lifecycle over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/transport/http/dto"
	catalog "auction_backend/internal/feature/catalog/domain/entity"
	catalogdto "auction_backend/internal/feature/catalog/transport/http/dto"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/shared/money"
)

// AuctionUsecase is the auction behaviour the handler needs.
type AuctionUsecase interface {
	PlaceBid(ctx context.Context, listingID, bidderID uint, value decimal.Decimal) (*entity.Bid, error)
	Deactivate(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error)
	Activate(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error)
	Close(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error)
	ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error)
	HighestBid(ctx context.Context, listingID uint) (*entity.Bid, error)
}

// AuctionHandler handles bid and lifecycle requests.
type AuctionHandler struct {
	uc AuctionUsecase
}

// NewAuctionHandler creates an AuctionHandler.
func NewAuctionHandler(uc AuctionUsecase) *AuctionHandler {
	return &AuctionHandler{uc: uc}
}

// PlaceBid handles POST /listings/:id/bids.
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	listingID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "place_bid", err)
		return
	}
	fields := log.Fields{"user_id": userID, "listing_id": listingID}
	value, err := money.Parse(req.Value)
	if err != nil {
		respond.Error(c, "place_bid", err, fields)
		return
	}

	bid, err := h.uc.PlaceBid(c.Request.Context(), listingID, userID, value)
	if err != nil {
		respond.Error(c, "place_bid", err, fields)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBidResponse(bid))
}

// ListBids handles GET /listings/:id/bids.
func (h *AuctionHandler) ListBids(c *gin.Context) {
	listingID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	bids, err := h.uc.ListBids(c.Request.Context(), listingID)
	if err != nil {
		respond.Error(c, "list_bids", err, log.Fields{"listing_id": listingID})
		return
	}
	c.JSON(http.StatusOK, dto.NewBidResponses(bids))
}

// HighestBid handles GET /listings/:id/bids/highest. It answers 204 when nobody has bid.
func (h *AuctionHandler) HighestBid(c *gin.Context) {
	listingID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	bid, err := h.uc.HighestBid(c.Request.Context(), listingID)
	if err != nil {
		respond.Error(c, "highest_bid", err, log.Fields{"listing_id": listingID})
		return
	}
	if bid == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewBidResponse(bid))
}

type transition func(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error)

// lifecycle adapts an owner-only state transition to a gin handler.
func (h *AuctionHandler) lifecycle(op string, fn transition) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := jwtmw.RequireUserID(c)
		if !ok {
			return
		}
		listingID, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}
		fields := log.Fields{"user_id": userID, "listing_id": listingID}
		listing, err := fn(c.Request.Context(), listingID, userID)
		if err != nil {
			respond.Error(c, op, err, fields)
			return
		}
		log.WithFields(fields).WithField("state", listing.State).Info(op + " succeeded")
		c.JSON(http.StatusOK, catalogdto.NewListingResponse(listing))
	}
}

// Deactivate handles POST /listings/:id/deactivate.
func (h *AuctionHandler) Deactivate(c *gin.Context) {
	h.lifecycle("deactivate", h.uc.Deactivate)(c)
}

// Activate handles POST /listings/:id/activate.
func (h *AuctionHandler) Activate(c *gin.Context) {
	h.lifecycle("activate", h.uc.Activate)(c)
}

// Close handles POST /listings/:id/close.
func (h *AuctionHandler) Close(c *gin.Context) {
	h.lifecycle("close", h.uc.Close)(c)
}
