// Package usecase implements registration, login and refresh-token sessions.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"auction_backend/internal/feature/auth/domain"
	"auction_backend/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 150

	// refreshTokenBytes yields a 64-character hex token.
	refreshTokenBytes = 32

	// dummyHash keeps Login timing the same whether or not the user exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// CreateWithProfile stores the user together with an empty contact profile.
	// It returns domain.ErrUsernameTaken on a duplicate username.
	CreateWithProfile(ctx context.Context, user *entity.User) error

	// FindByUsername returns domain.ErrUserNotFound when nobody has the username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns domain.ErrUserNotFound when the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	UpdateEmail(ctx context.Context, id uint, email string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// TokenGenerator signs access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, username string) (string, error)
}

// Options tunes token lifetimes and the session cap.
type Options struct {
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	MaxSessionsPerUser int
}

// SignupInput carries the registration form.
type SignupInput struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Password     string
	Confirmation string
}

// ClientInfo describes the client a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// AuthUsecase implements the identity and session flows.
type AuthUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
	opts     Options
	now      func() time.Time
}

// NewAuthUsecase creates an AuthUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, opts Options) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		opts:     opts,
		now:      time.Now,
	}
}

func validateNewPassword(password, confirmation string) error {
	if len(password) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	if password != confirmation {
		return domain.ErrPasswordMismatch
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Address != strings.TrimSpace(raw) {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrInvalidUserData)
	}
	return addr.Address, nil
}

// Signup registers a user and creates their empty contact profile.
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", domain.ErrInvalidUserData, maxUsernameLength)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validateNewPassword(in.Password, in.Confirmation); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Password:  string(hashed),
	}
	if err := u.users.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and opens a new session. When the user is
// at the session cap the oldest sessions are dropped first.
func (u *AuthUsecase) Login(ctx context.Context, username, password string, client ClientInfo) (*TokenPair, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash := dummyHash
	if err == nil {
		hash = user.Password
	}
	// Always compare so a missing user costs as much as a wrong password.
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := u.enforceSessionCap(ctx, user.ID); err != nil {
		return nil, err
	}
	return u.issue(ctx, user, client)
}

func (u *AuthUsecase) enforceSessionCap(ctx context.Context, userID uint) error {
	if u.opts.MaxSessionsPerUser <= 0 {
		return nil
	}
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= int64(u.opts.MaxSessionsPerUser); count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return fmt.Errorf("failed to evict session: %w", err)
		}
	}
	return nil
}

func (u *AuthUsecase) issue(ctx context.Context, user *entity.User, client ClientInfo) (*TokenPair, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	now := u.now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.opts.RefreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: u.opts.AccessTokenTTL}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Refresh exchanges a valid refresh token for a new pair and revokes the old one.
// Presenting an already revoked token revokes every session of its user.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, domain.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	if session.IsRevoked() {
		return nil, u.revokeReused(ctx, session.UserID)
	}
	if session.IsExpired() {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	rotated, err := u.sessions.RevokeIfLive(ctx, session.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, domain.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	if !rotated {
		// Another refresh with the same token got there first.
		return nil, u.revokeReused(ctx, session.UserID)
	}
	return u.issue(ctx, user, client)
}

// revokeReused signs the user out everywhere after a refresh token was
// presented twice. It returns the error Refresh reports to the caller.
func (u *AuthUsecase) revokeReused(ctx context.Context, userID uint) error {
	log.WithField("user_id", userID).Warn("refresh token reused, revoking all sessions")
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return domain.ErrInvalidRefreshToken
}

// Logout revokes the session. Unknown tokens are ignored.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	err := u.sessions.Revoke(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// verifyPassword checks password and its confirmation against the stored hash.
func (u *AuthUsecase) verifyPassword(ctx context.Context, userID uint, password, confirmation string) (*entity.User, error) {
	if password != confirmation {
		return nil, domain.ErrPasswordMismatch
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ChangeEmail replaces the user's email after re-checking the password.
func (u *AuthUsecase) ChangeEmail(ctx context.Context, userID uint, email, password, confirmation string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if _, err := u.verifyPassword(ctx, userID, password, confirmation); err != nil {
		return err
	}
	return u.users.UpdateEmail(ctx, userID, normalized)
}

// ChangePassword sets a new password and signs the user out everywhere.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmation string) error {
	if err := validateNewPassword(newPassword, confirmation); err != nil {
		return err
	}
	if _, err := u.verifyPassword(ctx, userID, oldPassword, oldPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	return u.sessions.RevokeAllByUserID(ctx, userID)
}

// PurgeExpiredSessions deletes sessions past their expiry.
func (u *AuthUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}
