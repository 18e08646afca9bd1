// Package domain holds the auction rules: bid admissibility and the listing
// state machine.
package domain

import (
	"errors"
	"fmt"

	"auction_backend/internal/shared/apperr"
)

var (
	// ErrListingNotFound is returned when the listing does not exist.
	ErrListingNotFound = fmt.Errorf("listing %w", apperr.ErrNotFound)

	// ErrNotListingOwner is returned when a lifecycle transition is requested by someone other than the owner.
	ErrNotListingOwner = fmt.Errorf("%w: only the listing owner may do this", apperr.ErrForbidden)

	// ErrSelfBid is returned when the owner bids on their own listing.
	ErrSelfBid = fmt.Errorf("%w: owners cannot bid on their own listing", apperr.ErrForbidden)

	// ErrBidTooLow is returned when the value does not exceed the current price.
	ErrBidTooLow = apperr.ErrBidTooLow

	// ErrNoBidsToClose is returned when closing a listing that has no bids.
	ErrNoBidsToClose = apperr.ErrNoBidsToClose

	// ErrListingClosed is returned for any mutation of a closed listing.
	ErrListingClosed = apperr.ErrAlreadyClosed

	// ErrListingInactive is returned when bidding on a deactivated listing.
	ErrListingInactive = fmt.Errorf("%w: listing is not accepting bids", apperr.ErrConflict)

	// ErrTooMuchContention is returned when the listing kept changing underneath every retry.
	ErrTooMuchContention = fmt.Errorf("%w: listing changed concurrently, try again", apperr.ErrConflict)

	// ErrStaleListing signals that a compare-and-set lost against a concurrent writer.
	// It never leaves the usecase; the transaction is retried instead.
	ErrStaleListing = errors.New("listing changed since it was read")
)
