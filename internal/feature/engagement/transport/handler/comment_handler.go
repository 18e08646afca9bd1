// Package handler exposes comments and watchlists over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/engagement/domain/entity"
	"auction_backend/internal/feature/engagement/transport/http/dto"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
)

// CommentUsecase is the comment behaviour the handler needs.
type CommentUsecase interface {
	AddComment(ctx context.Context, listingID, authorID uint, content string) (*entity.Comment, error)
	AddReply(ctx context.Context, commentID, requesterID uint, content string) (*entity.Comment, error)
	ListComments(ctx context.Context, listingID uint) ([]entity.Comment, error)
}

// CommentHandler handles comment requests.
type CommentHandler struct {
	uc CommentUsecase
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(uc CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// List handles GET /listings/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	listingID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.uc.ListComments(c.Request.Context(), listingID)
	if err != nil {
		respond.Error(c, "list_comments", err, log.Fields{"listing_id": listingID})
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

// Add handles POST /listings/:id/comments.
func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	listingID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "add_comment", err)
		return
	}
	comment, err := h.uc.AddComment(c.Request.Context(), listingID, userID, req.Content)
	if err != nil {
		respond.Error(c, "add_comment", err, log.Fields{"user_id": userID, "listing_id": listingID})
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// Reply handles PUT /comments/:id/reply.
func (h *CommentHandler) Reply(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	commentID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "add_reply", err)
		return
	}
	comment, err := h.uc.AddReply(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		respond.Error(c, "add_reply", err, log.Fields{"user_id": userID, "comment_id": commentID})
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}
