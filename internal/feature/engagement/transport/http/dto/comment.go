// Package dto defines the request and response bodies of the engagement API.
package dto

import (
	"time"

	"auction_backend/internal/feature/engagement/domain/entity"
)

// CommentRequest is the body of POST /listings/:id/comments and PUT /comments/:id/reply.
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=140"`
}

// CommentResponse is one comment with its optional reply.
type CommentResponse struct {
	ID        uint       `json:"id"`
	ListingID uint       `json:"listing_id"`
	AuthorID  uint       `json:"author_id"`
	Content   string     `json:"content"`
	Reply     *string    `json:"reply,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// WatchingResponse answers GET /watchlist/:listingId.
type WatchingResponse struct {
	ListingID uint `json:"listing_id"`
	Watching  bool `json:"watching"`
}

// NewCommentResponse converts a comment for the API.
func NewCommentResponse(c *entity.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		ListingID: c.ListingID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		Reply:     c.Reply,
		CreatedAt: c.CreatedAt.UTC(),
	}
	if c.RepliedAt != nil {
		at := c.RepliedAt.UTC()
		resp.RepliedAt = &at
	}
	return resp
}

// NewCommentResponses converts comments; nil becomes an empty array.
func NewCommentResponses(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
