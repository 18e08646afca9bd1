// Package dto defines the request and response bodies of the auction API.
package dto

import (
	"time"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/shared/money"
)

// PlaceBidRequest is the body of POST /listings/:id/bids.
// Value is a decimal string such as "15.00".
type PlaceBidRequest struct {
	Value string `json:"value" binding:"required"`
}

// BidResponse is one ledger entry.
type BidResponse struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing_id"`
	BidderID  uint      `json:"bidder_id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBidResponse converts a bid for the API.
func NewBidResponse(b *entity.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		ListingID: b.ListingID,
		BidderID:  b.BidderID,
		Value:     money.Format(b.Value),
		CreatedAt: b.CreatedAt.UTC(),
	}
}

// NewBidResponses converts a bid history; nil becomes an empty array.
func NewBidResponses(bids []entity.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for i := range bids {
		out = append(out, NewBidResponse(&bids[i]))
	}
	return out
}
