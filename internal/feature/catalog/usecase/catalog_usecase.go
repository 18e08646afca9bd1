// Package usecase implements the business logic for the catalog feature.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"auction_backend/internal/feature/catalog/domain"
	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/shared/money"
)

const (
	maxTitleLength       = 40
	maxDescriptionLength = 500
)

// CategoryRepository abstracts read access to categories.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id uint) (*entity.Category, error)
}

// ListingRepository abstracts the persistence layer for listings.
type ListingRepository interface {
	// Create persists a new listing and fills in its ID and timestamps.
	Create(ctx context.Context, listing *entity.Listing) error

	// FindByID returns domain.ErrListingNotFound when the listing does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Listing, error)

	// ListActive returns active listings newest first, optionally restricted to one category.
	ListActive(ctx context.Context, categoryID *uint) ([]entity.Listing, error)

	// ListByOwner returns every listing of ownerID regardless of state, newest first.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Listing, error)

	// ListWonBy returns closed listings whose winner is userID.
	ListWonBy(ctx context.Context, userID uint) ([]entity.Listing, error)

	// CountBids returns the number of bids recorded for the listing.
	CountBids(ctx context.Context, listingID uint) (int64, error)

	// DeleteUnbid removes the listing with its comments and watchlist entries.
	// It returns domain.ErrListingHasBids if any bid exists at deletion time.
	DeleteUnbid(ctx context.Context, listingID uint) error
}

// NewListingInput carries the fields a user supplies when listing an item.
type NewListingInput struct {
	Title         string
	Description   string
	StartingPrice decimal.Decimal
	CategoryID    uint
}

// ListingDetail is a listing enriched with its category and bid count.
type ListingDetail struct {
	Listing  entity.Listing
	Category entity.Category
	BidCount int64
}

// CatalogUsecase provides business logic for categories and listings.
type CatalogUsecase struct {
	categories CategoryRepository
	listings   ListingRepository
}

// NewCatalogUsecase creates a CatalogUsecase.
func NewCatalogUsecase(categories CategoryRepository, listings ListingRepository) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, listings: listings}
}

// ListCategories returns every category.
func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return u.categories.List(ctx)
}

// CreateListing validates the input and stores a new active listing owned by ownerID.
func (u *CatalogUsecase) CreateListing(ctx context.Context, ownerID uint, in NewListingInput) (*entity.Listing, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", domain.ErrInvalidListing, maxTitleLength)
	}
	if description == "" || utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be 1-%d characters", domain.ErrInvalidListing, maxDescriptionLength)
	}
	if err := money.Validate(in.StartingPrice); err != nil {
		return nil, fmt.Errorf("starting price: %w", err)
	}
	if _, err := u.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		Title:         title,
		Description:   description,
		StartingPrice: in.StartingPrice,
		CurrentPrice:  in.StartingPrice,
		OwnerID:       ownerID,
		CategoryID:    in.CategoryID,
		State:         entity.StateActive,
	}
	if err := u.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// GetListing returns the listing with its category and bid count.
func (u *CatalogUsecase) GetListing(ctx context.Context, id uint) (*ListingDetail, error) {
	listing, err := u.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := u.categories.FindByID(ctx, listing.CategoryID)
	if err != nil {
		return nil, err
	}
	count, err := u.listings.CountBids(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ListingDetail{Listing: *listing, Category: *category, BidCount: count}, nil
}

// ListActive returns every active listing.
func (u *CatalogUsecase) ListActive(ctx context.Context) ([]entity.Listing, error) {
	return u.listings.ListActive(ctx, nil)
}

// ListByCategory returns the active listings of one category.
func (u *CatalogUsecase) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Listing, error) {
	if _, err := u.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return u.listings.ListActive(ctx, &categoryID)
}

// ListByOwner returns all listings created by ownerID.
func (u *CatalogUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Listing, error) {
	return u.listings.ListByOwner(ctx, ownerID)
}

// ListWonBy returns the closed listings won by userID.
func (u *CatalogUsecase) ListWonBy(ctx context.Context, userID uint) ([]entity.Listing, error) {
	return u.listings.ListWonBy(ctx, userID)
}

// DeleteListing removes a listing on behalf of its owner.
// Closed listings and listings with bids are kept because the bid ledger is append-only.
func (u *CatalogUsecase) DeleteListing(ctx context.Context, requesterID, listingID uint) error {
	listing, err := u.listings.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !listing.IsOwnedBy(requesterID) {
		return domain.ErrNotListingOwner
	}
	if listing.IsClosed() {
		return domain.ErrListingClosed
	}
	return u.listings.DeleteUnbid(ctx, listingID)
}
