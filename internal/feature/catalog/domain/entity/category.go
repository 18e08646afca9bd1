// Package entity defines the domain entities for the catalog feature.
package entity

// Category groups listings, e.g. "Electronics". Categories are immutable once seeded.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:20;not null;uniqueIndex"`
}
