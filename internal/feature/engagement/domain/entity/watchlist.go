package entity

import "time"

// WatchlistEntry records that a user follows a listing. A (user, listing) pair appears at most once.
type WatchlistEntry struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_watchlist_user_listing"`
	ListingID uint `gorm:"not null;uniqueIndex:idx_watchlist_user_listing;index"`
	CreatedAt time.Time
}
