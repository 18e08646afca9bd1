// Package apperr defines the error kinds shared by every feature.
// Features wrap these sentinels with their own context so callers can
// match either the specific error or its kind with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound indicates that a referenced listing, comment, bid or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates that the requester is not allowed to perform the operation,
	// typically because they do not own the listing.
	ErrForbidden = errors.New("forbidden")

	// ErrBidTooLow indicates that a bid value is not strictly greater than the current price.
	ErrBidTooLow = errors.New("bid must be higher than the current price")

	// ErrNoBidsToClose indicates that a listing cannot be closed because nobody has bid on it.
	ErrNoBidsToClose = errors.New("listing has no bids to close with")

	// ErrAlreadyClosed indicates a mutation attempted on a listing that has been closed.
	ErrAlreadyClosed = errors.New("listing is already closed")

	// ErrInvalidInput indicates a malformed or out-of-range argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates that the operation conflicts with the current state of a resource.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
