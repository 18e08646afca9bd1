// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered marketplace member.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Username identifies the user at login and is unique.
	Username string `gorm:"uniqueIndex;size:150;not null"`

	Email     string `gorm:"size:255;not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`

	// Password is the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
