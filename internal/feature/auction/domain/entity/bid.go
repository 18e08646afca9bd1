// Package entity defines the domain entities for the auction feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an accepted offer on a listing. Bids are append-only:
// once written they are never updated or deleted.
type Bid struct {
	ID        uint            `gorm:"primaryKey"`
	ListingID uint            `gorm:"index;not null"`
	BidderID  uint            `gorm:"index;not null"`
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
