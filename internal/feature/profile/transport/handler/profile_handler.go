// Package handler exposes the profile page over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/profile/domain/entity"
	"auction_backend/internal/feature/profile/transport/http/dto"
	"auction_backend/internal/feature/profile/usecase"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
)

// ProfileUsecase is the profile behaviour the handler needs.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, patch usecase.Patch) (*entity.Profile, error)
}

// ProfileHandler handles GET and PUT /profile.
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	p, err := h.uc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, "get_profile", err, log.Fields{"user_id": userID})
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(p))
}

// Update handles PUT /profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "update_profile", err)
		return
	}
	p, err := h.uc.UpdateProfile(c.Request.Context(), userID, usecase.Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		House:     req.House,
		Street:    req.Street,
		Postcode:  req.Postcode,
		City:      req.City,
		Country:   req.Country,
	})
	if err != nil {
		respond.Error(c, "update_profile", err, log.Fields{"user_id": userID})
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(p))
}
