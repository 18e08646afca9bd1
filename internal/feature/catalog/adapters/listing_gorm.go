package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_backend/internal/feature/catalog/domain"
	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/catalog/usecase"
)

// Tables owned by other features that reference listings.
const (
	bidsTable      = "bids"
	commentsTable  = "comments"
	watchlistTable = "watchlist_entries"
)

// listingGorm is the GORM implementation of usecase.ListingRepository.
type listingGorm struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingGorm)(nil)

// NewListingRepository creates a listing repository backed by db.
func NewListingRepository(db *gorm.DB) *listingGorm {
	return &listingGorm{db: db}
}

// Create inserts the listing.
func (r *listingGorm) Create(ctx context.Context, l *entity.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// FindByID returns domain.ErrListingNotFound when no listing matches.
func (r *listingGorm) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	var l entity.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListActive returns active listings newest first, optionally filtered by category.
func (r *listingGorm) ListActive(ctx context.Context, categoryID *uint) ([]entity.Listing, error) {
	q := r.db.WithContext(ctx).Where("state = ?", entity.StateActive)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var listings []entity.Listing
	if err := q.Order("created_at DESC").Order("id DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListByOwner returns every listing of ownerID newest first.
func (r *listingGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Listing, error) {
	var listings []entity.Listing
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListWonBy returns closed listings won by userID, most recently closed first.
func (r *listingGorm) ListWonBy(ctx context.Context, userID uint) ([]entity.Listing, error) {
	var listings []entity.Listing
	if err := r.db.WithContext(ctx).
		Where("state = ? AND winner_id = ?", entity.StateClosed, userID).
		Order("updated_at DESC").Order("id DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// CountBids counts the bids placed on listingID.
func (r *listingGorm) CountBids(ctx context.Context, listingID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(bidsTable).Where("listing_id = ?", listingID).Count(&n).Error
	return n, err
}

// DeleteUnbid deletes the listing and its engagement rows in one transaction.
// The listing row is locked first so that a concurrent bid either lands before
// the check (and blocks deletion) or finds the listing gone.
func (r *listingGorm) DeleteUnbid(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l entity.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", listingID).First(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrListingNotFound
			}
			return err
		}

		var bids int64
		if err := tx.Table(bidsTable).Where("listing_id = ?", listingID).Count(&bids).Error; err != nil {
			return err
		}
		if bids > 0 {
			return domain.ErrListingHasBids
		}

		if err := tx.Exec("DELETE FROM "+commentsTable+" WHERE listing_id = ?", listingID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+watchlistTable+" WHERE listing_id = ?", listingID).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Listing{}, listingID).Error
	})
}
