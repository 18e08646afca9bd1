// Package handler exposes categories and listings over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/catalog/transport/http/dto"
	"auction_backend/internal/feature/catalog/usecase"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/shared/money"
)

// CatalogUsecase is the catalog behaviour the handler needs.
type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateListing(ctx context.Context, ownerID uint, in usecase.NewListingInput) (*entity.Listing, error)
	GetListing(ctx context.Context, id uint) (*usecase.ListingDetail, error)
	ListActive(ctx context.Context) ([]entity.Listing, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]entity.Listing, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Listing, error)
	ListWonBy(ctx context.Context, userID uint) ([]entity.Listing, error)
	DeleteListing(ctx context.Context, requesterID, listingID uint) error
}

// CatalogHandler handles category and listing requests.
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		respond.Error(c, "list_categories", err, nil)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponses(categories))
}

// ListByCategory handles GET /categories/:id/listings.
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	listings, err := h.uc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, "list_by_category", err, log.Fields{"category_id": id})
		return
	}
	c.JSON(http.StatusOK, dto.NewListingResponses(listings))
}

// ListActive handles GET /listings.
func (h *CatalogHandler) ListActive(c *gin.Context) {
	listings, err := h.uc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, "list_active", err, nil)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingResponses(listings))
}

// GetListing handles GET /listings/:id.
func (h *CatalogHandler) GetListing(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.uc.GetListing(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, "get_listing", err, log.Fields{"listing_id": id})
		return
	}
	c.JSON(http.StatusOK, dto.ListingDetailResponse{
		ListingResponse: dto.NewListingResponse(&detail.Listing),
		Category:        detail.Category.Name,
		BidCount:        detail.BidCount,
	})
}

// CreateListing handles POST /listings.
func (h *CatalogHandler) CreateListing(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "create_listing", err)
		return
	}
	price, err := money.Parse(req.StartingPrice)
	if err != nil {
		respond.Error(c, "create_listing", err, log.Fields{"user_id": userID})
		return
	}

	listing, err := h.uc.CreateListing(c.Request.Context(), userID, usecase.NewListingInput{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: price,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		respond.Error(c, "create_listing", err, log.Fields{"user_id": userID})
		return
	}
	log.WithFields(log.Fields{"user_id": userID, "listing_id": listing.ID}).Info("listing created")
	c.JSON(http.StatusCreated, dto.NewListingResponse(listing))
}

// DeleteListing handles DELETE /listings/:id.
func (h *CatalogHandler) DeleteListing(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteListing(c.Request.Context(), userID, id); err != nil {
		respond.Error(c, "delete_listing", err, log.Fields{"user_id": userID, "listing_id": id})
		return
	}
	log.WithFields(log.Fields{"user_id": userID, "listing_id": id}).Info("listing deleted")
	c.Status(http.StatusNoContent)
}

// ListMine handles GET /profile/listings.
func (h *CatalogHandler) ListMine(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	listings, err := h.uc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, "list_mine", err, log.Fields{"user_id": userID})
		return
	}
	c.JSON(http.StatusOK, dto.NewListingResponses(listings))
}

// ListWon handles GET /profile/won.
func (h *CatalogHandler) ListWon(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	listings, err := h.uc.ListWonBy(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, "list_won", err, log.Fields{"user_id": userID})
		return
	}
	c.JSON(http.StatusOK, dto.NewListingResponses(listings))
}
