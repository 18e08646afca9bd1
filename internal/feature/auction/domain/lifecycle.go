package domain

import (
	"github.com/shopspring/decimal"

	catalog "auction_backend/internal/feature/catalog/domain/entity"
)

// CheckBid reports whether bidderID may bid value on l in its current state.
func CheckBid(l *catalog.Listing, bidderID uint, value decimal.Decimal) error {
	if l.IsClosed() {
		return ErrListingClosed
	}
	if !l.IsActive() {
		return ErrListingInactive
	}
	if l.IsOwnedBy(bidderID) {
		return ErrSelfBid
	}
	if !value.GreaterThan(l.CurrentPrice) {
		return ErrBidTooLow
	}
	return nil
}

// NextStateForToggle validates an owner's deactivate/activate request and
// returns whether the listing has to move to target. Toggling a listing that
// is already in target is a no-op.
func NextStateForToggle(l *catalog.Listing, requesterID uint, target catalog.ListingState) (bool, error) {
	if !l.IsOwnedBy(requesterID) {
		return false, ErrNotListingOwner
	}
	if l.IsClosed() {
		return false, ErrListingClosed
	}
	return l.State != target, nil
}

// CheckClose validates an owner's close request. Closing is allowed from both
// non-terminal states.
func CheckClose(l *catalog.Listing, requesterID uint) error {
	if !l.IsOwnedBy(requesterID) {
		return ErrNotListingOwner
	}
	if l.IsClosed() {
		return ErrListingClosed
	}
	return nil
}
