// Package adapters persists bids and listing state transitions with GORM.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
	catalog "auction_backend/internal/feature/catalog/domain/entity"
)

// auctionStore is the GORM implementation of usecase.Store.
type auctionStore struct {
	db *gorm.DB
}

var _ usecase.Store = (*auctionStore)(nil)

// NewAuctionStore creates an auction store backed by db.
func NewAuctionStore(db *gorm.DB) *auctionStore {
	return &auctionStore{db: db}
}

// WithinTx runs fn in a database transaction.
func (s *auctionStore) WithinTx(ctx context.Context, fn func(tx usecase.TxStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&auctionTx{db: tx})
	})
}

// FindListing returns domain.ErrListingNotFound when no listing matches.
func (s *auctionStore) FindListing(ctx context.Context, listingID uint) (*catalog.Listing, error) {
	return findListing(s.db.WithContext(ctx), listingID)
}

// ListBids returns the bids of a listing newest first.
func (s *auctionStore) ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error) {
	var bids []entity.Bid
	if err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id DESC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// HighestBid returns the largest bid, the earliest one on ties, or nil.
func (s *auctionStore) HighestBid(ctx context.Context, listingID uint) (*entity.Bid, error) {
	var bid entity.Bid
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("value DESC").Order("id ASC").
		Take(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func findListing(db *gorm.DB, listingID uint) (*catalog.Listing, error) {
	var l catalog.Listing
	if err := db.Where("id = ?", listingID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// auctionTx implements usecase.TxStore on a transaction handle.
// Every query must go through db so it runs inside the transaction.
type auctionTx struct {
	db *gorm.DB
}

var _ usecase.TxStore = (*auctionTx)(nil)

// LockListing reads the listing with SELECT ... FOR UPDATE.
// SQLite drops the locking clause and serialises writers instead.
func (t *auctionTx) LockListing(ctx context.Context, listingID uint) (*catalog.Listing, error) {
	return findListing(t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), listingID)
}

// CompareAndSetPrice updates the price only if the listing is still active at expected.
func (t *auctionTx) CompareAndSetPrice(ctx context.Context, listingID uint, expected, next decimal.Decimal) (bool, error) {
	res := t.db.WithContext(ctx).Model(&catalog.Listing{}).
		Where("id = ? AND state = ? AND current_price = ?", listingID, catalog.StateActive, expected).
		Updates(map[string]interface{}{
			"current_price": next,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AppendBid inserts the bid.
func (t *auctionTx) AppendBid(ctx context.Context, bid *entity.Bid) error {
	return t.db.WithContext(ctx).Create(bid).Error
}

// CompareAndSetState moves the listing from one state to another.
func (t *auctionTx) CompareAndSetState(ctx context.Context, listingID uint, from, to catalog.ListingState, winnerID *uint) (bool, error) {
	res := t.db.WithContext(ctx).Model(&catalog.Listing{}).
		Where("id = ? AND state = ?", listingID, from).
		Updates(map[string]interface{}{
			"state":      to,
			"winner_id":  winnerID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FindBidAtPrice returns the earliest bid with value equal to price, or nil.
func (t *auctionTx) FindBidAtPrice(ctx context.Context, listingID uint, price decimal.Decimal) (*entity.Bid, error) {
	var bid entity.Bid
	err := t.db.WithContext(ctx).
		Where("listing_id = ? AND value = ?", listingID, price).
		Order("id ASC").
		Take(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}
