// Package usecase implements comments, replies and watchlists.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	catalog "auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/engagement/domain"
	"auction_backend/internal/feature/engagement/domain/entity"
)

const maxCommentLength = 140

// ListingReader looks up listings owned by the catalog.
type ListingReader interface {
	// FindByID returns an error wrapping apperr.ErrNotFound for unknown listings.
	FindByID(ctx context.Context, id uint) (*catalog.Listing, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	// FindByID returns domain.ErrCommentNotFound when the comment does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	// ListByListing returns the comments of a listing oldest first.
	ListByListing(ctx context.Context, listingID uint) ([]entity.Comment, error)
	// SetReply overwrites the reply of a comment.
	SetReply(ctx context.Context, commentID uint, reply string, at time.Time) error
}

// CommentUsecase lets users discuss listings and owners answer.
type CommentUsecase struct {
	listings ListingReader
	comments CommentRepository
	now      func() time.Time
}

// NewCommentUsecase creates a CommentUsecase.
func NewCommentUsecase(listings ListingReader, comments CommentRepository) *CommentUsecase {
	return &CommentUsecase{listings: listings, comments: comments, now: time.Now}
}

func normalizeText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxCommentLength {
		return "", fmt.Errorf("%w: text must be 1-%d characters", domain.ErrInvalidComment, maxCommentLength)
	}
	return s, nil
}

// AddComment records a comment by authorID on a listing. Owners may comment on their own listings.
func (u *CommentUsecase) AddComment(ctx context.Context, listingID, authorID uint, content string) (*entity.Comment, error) {
	content, err := normalizeText(content)
	if err != nil {
		return nil, err
	}
	if _, err := u.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	c := &entity.Comment{ListingID: listingID, AuthorID: authorID, Content: content, CreatedAt: u.now()}
	if err := u.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return c, nil
}

// AddReply sets the owner's answer to a comment, replacing any earlier reply.
func (u *CommentUsecase) AddReply(ctx context.Context, commentID, requesterID uint, content string) (*entity.Comment, error) {
	content, err := normalizeText(content)
	if err != nil {
		return nil, err
	}
	c, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	listing, err := u.listings.FindByID(ctx, c.ListingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(requesterID) {
		return nil, domain.ErrNotListingOwner
	}

	at := u.now()
	if err := u.comments.SetReply(ctx, commentID, content, at); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	c.Reply = &content
	c.RepliedAt = &at
	return c, nil
}

// ListComments returns the comments of a listing oldest first.
func (u *CommentUsecase) ListComments(ctx context.Context, listingID uint) ([]entity.Comment, error) {
	if _, err := u.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}
	return u.comments.ListByListing(ctx, listingID)
}
