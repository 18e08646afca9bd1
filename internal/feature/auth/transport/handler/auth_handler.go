// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/transport/http/dto"
	"auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/platform/http/respond"
	jwtmw "auction_backend/internal/platform/jwt"
)

// AuthUsecase defines the authentication operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangeEmail(ctx context.Context, userID uint, email, password, confirmation string) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Signup handles POST /signup.
//   - 400 on validation errors
//   - 409 when the username is taken
//   - 201 with the created user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "signup", err)
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		respond.Error(c, "signup", err, log.Fields{"username": req.Username, "remote_addr": c.ClientIP()})
		return
	}
	log.WithFields(log.Fields{"user_id": user.ID, "remote_addr": c.ClientIP()}).Info("user signup successful")
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /login. Wrong username and wrong password both answer 401
// with the same message.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "login", err)
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, clientInfo(c))
	if err != nil {
		respond.Error(c, "login", err, log.Fields{"username": req.Username, "remote_addr": c.ClientIP()})
		return
	}
	log.WithFields(log.Fields{"username": req.Username, "remote_addr": c.ClientIP()}).Info("user login successful")
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair.AccessToken, pair.RefreshToken, pair.ExpiresIn))
}

// Refresh handles POST /refresh and rotates the refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "refresh", err)
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		respond.Error(c, "refresh", err, log.Fields{"remote_addr": c.ClientIP()})
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair.AccessToken, pair.RefreshToken, pair.ExpiresIn))
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "logout", err)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respond.Error(c, "logout", err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeEmail handles PUT /profile/email.
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "change_email", err)
		return
	}
	if err := h.auth.ChangeEmail(c.Request.Context(), userID, req.Email, req.Password, req.Confirmation); err != nil {
		respond.Error(c, "change_email", err, log.Fields{"user_id": userID})
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangePassword handles PUT /profile/password. All refresh sessions of the
// user are revoked on success.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := jwtmw.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, "change_password", err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword, req.Confirmation); err != nil {
		respond.Error(c, "change_password", err, log.Fields{"user_id": userID})
		return
	}
	log.WithField("user_id", userID).Info("password changed, sessions revoked")
	c.Status(http.StatusNoContent)
}
