// Package domain defines domain-level errors for the auth feature.
package domain

import (
	"fmt"

	"auction_backend/internal/shared/apperr"
)

var (
	// ErrUsernameTaken is returned by signup when the username is already registered.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", apperr.ErrConflict)

	// ErrUserNotFound is returned when no user matches the given criteria.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrInvalidCredentials is returned when the username or password is wrong.
	// It deliberately does not say which.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)

	// ErrInvalidRefreshToken is returned for unknown, expired or revoked refresh tokens.
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", apperr.ErrUnauthorized)

	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = fmt.Errorf("%w: password must be at least 8 characters long", apperr.ErrInvalidInput)

	// ErrPasswordMismatch is returned when a password and its confirmation differ.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", apperr.ErrInvalidInput)

	// ErrInvalidUserData is returned when signup or profile fields fail validation.
	ErrInvalidUserData = fmt.Errorf("user: %w", apperr.ErrInvalidInput)
)
