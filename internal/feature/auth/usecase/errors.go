package usecase

import "errors"

// Errors returned by SessionRepository implementations.
var (
	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")
)
