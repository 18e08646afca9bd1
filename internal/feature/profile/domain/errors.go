// Package domain defines domain-level errors for the profile feature.
package domain

import (
	"fmt"

	"auction_backend/internal/shared/apperr"
)

var (
	// ErrProfileNotFound is returned when the user behind a profile does not exist.
	ErrProfileNotFound = fmt.Errorf("profile %w", apperr.ErrNotFound)

	// ErrInvalidProfile is returned when a profile field fails validation.
	ErrInvalidProfile = fmt.Errorf("profile: %w", apperr.ErrInvalidInput)
)
