// Package domain defines domain-level errors for the engagement feature.
package domain

import (
	"fmt"

	"auction_backend/internal/shared/apperr"
)

var (
	// ErrCommentNotFound is returned when no comment matches the given ID.
	ErrCommentNotFound = fmt.Errorf("comment %w", apperr.ErrNotFound)

	// ErrNotListingOwner is returned when someone other than the listing owner replies.
	ErrNotListingOwner = fmt.Errorf("%w: only the listing owner may reply", apperr.ErrForbidden)

	// ErrInvalidComment is returned when a comment or reply fails validation.
	ErrInvalidComment = fmt.Errorf("comment: %w", apperr.ErrInvalidInput)
)
