package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/engagement/domain/entity"
	"auction_backend/internal/feature/engagement/usecase"
)

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository creates a watchlist repository backed by db.
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Add relies on the unique (user_id, listing_id) index to ignore duplicates.
func (r *watchlistGorm) Add(ctx context.Context, userID, listingID uint) error {
	entry := &entity.WatchlistEntry{UserID: userID, ListingID: listingID, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

func (r *watchlistGorm) Remove(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&entity.WatchlistEntry{}).Error
}

func (r *watchlistGorm) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.WatchlistEntry{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&n).Error
	return n > 0, err
}

func (r *watchlistGorm) ListListings(ctx context.Context, userID uint) ([]catalog.Listing, error) {
	var listings []catalog.Listing
	err := r.db.WithContext(ctx).
		Joins("JOIN watchlist_entries w ON w.listing_id = listings.id").
		Where("w.user_id = ?", userID).
		Order("w.created_at DESC").Order("w.id DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}
