// Package domain defines domain-level errors for the catalog feature.
package domain

import (
	"fmt"

	"auction_backend/internal/shared/apperr"
)

var (
	// ErrListingNotFound is returned when no listing matches the given ID.
	ErrListingNotFound = fmt.Errorf("listing %w", apperr.ErrNotFound)

	// ErrCategoryNotFound is returned when no category matches the given ID.
	ErrCategoryNotFound = fmt.Errorf("category %w", apperr.ErrNotFound)

	// ErrNotListingOwner is returned when someone other than the owner tries to manage a listing.
	ErrNotListingOwner = fmt.Errorf("%w: only the listing owner may do this", apperr.ErrForbidden)

	// ErrListingClosed is returned when deleting a listing that already has a winner.
	ErrListingClosed = fmt.Errorf("%w: listing is closed", apperr.ErrConflict)

	// ErrListingHasBids is returned when deleting a listing that already received bids.
	ErrListingHasBids = fmt.Errorf("%w: listing already has bids", apperr.ErrConflict)

	// ErrInvalidListing is returned when the listing fields fail validation.
	ErrInvalidListing = fmt.Errorf("listing: %w", apperr.ErrInvalidInput)
)
