package usecase

import (
	"context"

	catalog "auction_backend/internal/feature/catalog/domain/entity"
)

// WatchlistRepository persists watchlist membership.
type WatchlistRepository interface {
	// Add inserts the pair; an existing pair is left as is.
	Add(ctx context.Context, userID, listingID uint) error
	// Remove deletes the pair if present.
	Remove(ctx context.Context, userID, listingID uint) error
	// Exists reports whether the pair is present.
	Exists(ctx context.Context, userID, listingID uint) (bool, error)
	// ListListings returns the watched listings, most recently added first.
	ListListings(ctx context.Context, userID uint) ([]catalog.Listing, error)
}

// WatchlistUsecase manages the listings a user follows.
type WatchlistUsecase struct {
	listings  ListingReader
	watchlist WatchlistRepository
}

// NewWatchlistUsecase creates a WatchlistUsecase.
func NewWatchlistUsecase(listings ListingReader, watchlist WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{listings: listings, watchlist: watchlist}
}

// Add puts a listing on the user's watchlist. Adding twice is a no-op.
func (u *WatchlistUsecase) Add(ctx context.Context, userID, listingID uint) error {
	if _, err := u.listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return u.watchlist.Add(ctx, userID, listingID)
}

// Remove takes a listing off the watchlist. Removing an absent listing is a no-op.
func (u *WatchlistUsecase) Remove(ctx context.Context, userID, listingID uint) error {
	return u.watchlist.Remove(ctx, userID, listingID)
}

// List returns the listings the user watches.
func (u *WatchlistUsecase) List(ctx context.Context, userID uint) ([]catalog.Listing, error) {
	return u.watchlist.ListListings(ctx, userID)
}

// IsWatching reports whether the user watches the listing.
func (u *WatchlistUsecase) IsWatching(ctx context.Context, userID, listingID uint) (bool, error) {
	return u.watchlist.Exists(ctx, userID, listingID)
}
