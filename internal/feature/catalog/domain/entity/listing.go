package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingState is the lifecycle state of a listing.
type ListingState string

const (
	// StateActive listings are visible and accept bids.
	StateActive ListingState = "active"
	// StateDeactivated listings are hidden by their owner and may be reactivated.
	StateDeactivated ListingState = "deactivated"
	// StateClosed listings have a winner and are terminal.
	StateClosed ListingState = "closed"
)

// Listing is an item put up for auction by its owner.
//
// CurrentPrice starts at StartingPrice and only ever grows as bids are accepted.
// WinnerID is set exactly when State is StateClosed.
type Listing struct {
	ID            uint            `gorm:"primaryKey"`
	Title         string          `gorm:"size:40;not null"`
	Description   string          `gorm:"size:500;not null"`
	StartingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OwnerID       uint            `gorm:"index;not null"`
	CategoryID    uint            `gorm:"index;not null"`
	State         ListingState    `gorm:"size:16;index;not null;default:active"`
	WinnerID      *uint           `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOwnedBy reports whether userID owns the listing.
func (l *Listing) IsOwnedBy(userID uint) bool {
	return l.OwnerID == userID
}

// IsActive reports whether the listing currently accepts bids.
func (l *Listing) IsActive() bool {
	return l.State == StateActive
}

// IsClosed reports whether the listing reached its terminal state.
func (l *Listing) IsClosed() bool {
	return l.State == StateClosed
}
