// Package dto defines the request and response bodies of the catalog API.
package dto

import (
	"time"

	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/shared/money"
)

// CreateListingRequest is the body of POST /listings.
type CreateListingRequest struct {
	Title         string `json:"title" binding:"required,max=40"`
	Description   string `json:"description" binding:"required,max=500"`
	StartingPrice string `json:"starting_price" binding:"required"`
	CategoryID    uint   `json:"category_id" binding:"required"`
}

// CategoryResponse is one category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListingResponse is a listing as returned by the API. Prices are decimal strings.
type ListingResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice string    `json:"starting_price"`
	CurrentPrice  string    `json:"current_price"`
	OwnerID       uint      `json:"owner_id"`
	CategoryID    uint      `json:"category_id"`
	State         string    `json:"state"`
	WinnerID      *uint     `json:"winner_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListingDetailResponse adds the category name and bid count to a listing.
type ListingDetailResponse struct {
	ListingResponse
	Category string `json:"category"`
	BidCount int64  `json:"bid_count"`
}

// NewCategoryResponses converts categories for the API.
func NewCategoryResponses(categories []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

// NewListingResponse converts a listing for the API.
func NewListingResponse(l *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		StartingPrice: money.Format(l.StartingPrice),
		CurrentPrice:  money.Format(l.CurrentPrice),
		OwnerID:       l.OwnerID,
		CategoryID:    l.CategoryID,
		State:         string(l.State),
		WinnerID:      l.WinnerID,
		CreatedAt:     l.CreatedAt.UTC(),
	}
}

// NewListingResponses converts a slice of listings; nil becomes an empty array.
func NewListingResponses(listings []entity.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, NewListingResponse(&listings[i]))
	}
	return out
}
