// Package entity defines the domain entities for the engagement feature.
package entity

import "time"

// Comment is a question or remark left on a listing. The listing owner may
// answer it with a single reply, which later replies overwrite.
type Comment struct {
	ID        uint    `gorm:"primaryKey"`
	ListingID uint    `gorm:"index;not null"`
	AuthorID  uint    `gorm:"index;not null"`
	Content   string  `gorm:"size:140;not null"`
	Reply     *string `gorm:"size:140"`
	RepliedAt *time.Time
	CreatedAt time.Time
}

// HasReply reports whether the owner has answered the comment.
func (c *Comment) HasReply() bool {
	return c.Reply != nil
}
