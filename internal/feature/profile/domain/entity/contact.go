// Package entity defines the domain entities for the profile feature.
package entity

import "time"

// ContactProfile holds a user's postal contact details. Every field is
// optional; a row exists for each user from signup onward.
type ContactProfile struct {
	ID       uint    `gorm:"primaryKey"`
	UserID   uint    `gorm:"uniqueIndex;not null"`
	House    *string `gorm:"size:64"`
	Street   *string `gorm:"size:64"`
	Postcode *string `gorm:"size:5"`
	City     *string `gorm:"size:64"`
	Country  *string `gorm:"size:64"`

	UpdatedAt time.Time
}
