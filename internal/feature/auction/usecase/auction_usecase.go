// Package usecase implements the bid ledger and the listing lifecycle.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	catalog "auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/shared/money"
)

// maxAttempts bounds how often a transaction is replayed after losing a compare-and-set.
const maxAttempts = 3

// Store is the transactional store the auction operations run against.
// Interfaces are declared here, by the consumer.
type Store interface {
	// WithinTx runs fn in one transaction. Returning an error rolls it back.
	WithinTx(ctx context.Context, fn func(tx TxStore) error) error

	// FindListing returns domain.ErrListingNotFound when the listing does not exist.
	FindListing(ctx context.Context, listingID uint) (*catalog.Listing, error)

	// ListBids returns the bids of a listing newest first.
	ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error)

	// HighestBid returns nil when the listing has no bids.
	HighestBid(ctx context.Context, listingID uint) (*entity.Bid, error)
}

// TxStore is the view of the store inside a transaction.
type TxStore interface {
	// LockListing reads the listing and holds a write lock on it until commit.
	LockListing(ctx context.Context, listingID uint) (*catalog.Listing, error)

	// CompareAndSetPrice moves an active listing from expected to next.
	// It reports false when the price or state changed since it was read.
	CompareAndSetPrice(ctx context.Context, listingID uint, expected, next decimal.Decimal) (bool, error)

	// AppendBid inserts a bid and fills in its ID.
	AppendBid(ctx context.Context, bid *entity.Bid) error

	// CompareAndSetState moves the listing from one state to another and sets winnerID.
	// It reports false when the listing is no longer in from.
	CompareAndSetState(ctx context.Context, listingID uint, from, to catalog.ListingState, winnerID *uint) (bool, error)

	// FindBidAtPrice returns the earliest bid whose value equals price, or nil.
	FindBidAtPrice(ctx context.Context, listingID uint, price decimal.Decimal) (*entity.Bid, error)
}

// AuctionUsecase places bids and moves listings through their lifecycle.
type AuctionUsecase struct {
	store Store
	now   func() time.Time
}

// NewAuctionUsecase creates an AuctionUsecase backed by store.
func NewAuctionUsecase(store Store) *AuctionUsecase {
	return &AuctionUsecase{store: store, now: time.Now}
}

// withRetry replays fn while it loses compare-and-set races.
func (u *AuctionUsecase) withRetry(ctx context.Context, op string, listingID uint, fn func(tx TxStore) error) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := u.store.WithinTx(ctx, fn)
		if !errors.Is(err, domain.ErrStaleListing) {
			return err
		}
		log.WithFields(log.Fields{
			"op":         op,
			"listing_id": listingID,
			"attempt":    attempt,
		}).Debug("listing changed concurrently, retrying")
	}
	return domain.ErrTooMuchContention
}

// PlaceBid records value as the new highest bid on listingID.
// The price update and the ledger append commit together or not at all.
func (u *AuctionUsecase) PlaceBid(ctx context.Context, listingID, bidderID uint, value decimal.Decimal) (*entity.Bid, error) {
	if err := money.Validate(value); err != nil {
		return nil, fmt.Errorf("bid: %w", err)
	}

	var placed *entity.Bid
	err := u.withRetry(ctx, "place_bid", listingID, func(tx TxStore) error {
		listing, err := tx.LockListing(ctx, listingID)
		if err != nil {
			return err
		}
		if err := domain.CheckBid(listing, bidderID, value); err != nil {
			return err
		}

		ok, err := tx.CompareAndSetPrice(ctx, listingID, listing.CurrentPrice, value)
		if err != nil {
			return fmt.Errorf("failed to update price: %w", err)
		}
		if !ok {
			return domain.ErrStaleListing
		}

		bid := &entity.Bid{ListingID: listingID, BidderID: bidderID, Value: value, CreatedAt: u.now()}
		if err := tx.AppendBid(ctx, bid); err != nil {
			return fmt.Errorf("failed to append bid: %w", err)
		}
		placed = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"listing_id": listingID,
		"bidder_id":  bidderID,
		"value":      money.Format(value),
	}).Info("bid placed")
	return placed, nil
}

// Deactivate hides an active listing. Deactivating a deactivated listing is a no-op.
func (u *AuctionUsecase) Deactivate(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error) {
	return u.toggle(ctx, "deactivate", listingID, requesterID, catalog.StateDeactivated)
}

// Activate makes a deactivated listing accept bids again. Activating an active listing is a no-op.
func (u *AuctionUsecase) Activate(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error) {
	return u.toggle(ctx, "activate", listingID, requesterID, catalog.StateActive)
}

func (u *AuctionUsecase) toggle(ctx context.Context, op string, listingID, requesterID uint, target catalog.ListingState) (*catalog.Listing, error) {
	var result *catalog.Listing
	err := u.withRetry(ctx, op, listingID, func(tx TxStore) error {
		listing, err := tx.LockListing(ctx, listingID)
		if err != nil {
			return err
		}
		changed, err := domain.NextStateForToggle(listing, requesterID, target)
		if err != nil {
			return err
		}
		if changed {
			ok, err := tx.CompareAndSetState(ctx, listingID, listing.State, target, nil)
			if err != nil {
				return fmt.Errorf("failed to update state: %w", err)
			}
			if !ok {
				return domain.ErrStaleListing
			}
			listing.State = target
		}
		result = listing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close ends the auction and awards the listing to the bidder whose bid equals
// the current price. A listing without bids stays open and ErrNoBidsToClose is returned.
func (u *AuctionUsecase) Close(ctx context.Context, listingID, requesterID uint) (*catalog.Listing, error) {
	var result *catalog.Listing
	err := u.withRetry(ctx, "close", listingID, func(tx TxStore) error {
		listing, err := tx.LockListing(ctx, listingID)
		if err != nil {
			return err
		}
		if err := domain.CheckClose(listing, requesterID); err != nil {
			return err
		}

		winning, err := tx.FindBidAtPrice(ctx, listingID, listing.CurrentPrice)
		if err != nil {
			return fmt.Errorf("failed to resolve winner: %w", err)
		}
		if winning == nil {
			return domain.ErrNoBidsToClose
		}

		winner := winning.BidderID
		ok, err := tx.CompareAndSetState(ctx, listingID, listing.State, catalog.StateClosed, &winner)
		if err != nil {
			return fmt.Errorf("failed to close listing: %w", err)
		}
		if !ok {
			return domain.ErrStaleListing
		}
		listing.State = catalog.StateClosed
		listing.WinnerID = &winner
		result = listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"listing_id": listingID,
		"winner_id":  *result.WinnerID,
		"price":      money.Format(result.CurrentPrice),
	}).Info("auction closed")
	return result, nil
}

// ListBids returns the bid history of a listing newest first.
func (u *AuctionUsecase) ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error) {
	if _, err := u.store.FindListing(ctx, listingID); err != nil {
		return nil, err
	}
	return u.store.ListBids(ctx, listingID)
}

// HighestBid returns the current leading bid, or nil when nobody has bid yet.
func (u *AuctionUsecase) HighestBid(ctx context.Context, listingID uint) (*entity.Bid, error) {
	if _, err := u.store.FindListing(ctx, listingID); err != nil {
		return nil, err
	}
	return u.store.HighestBid(ctx, listingID)
}
