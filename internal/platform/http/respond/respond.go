// Package respond writes JSON error responses for gin handlers and maps
// application error kinds to HTTP status codes.
package respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/platform/middleware"
	"auction_backend/internal/shared/apperr"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

const internalErrorMessage = "internal server error"

// StatusFor maps err to an HTTP status and a client-safe message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrBidTooLow),
		errors.Is(err, apperr.ErrNoBidsToClose),
		errors.Is(err, apperr.ErrAlreadyClosed),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// Error logs err with the request context and writes the mapped status.
func Error(c *gin.Context, op string, err error, fields log.Fields) {
	status, msg := StatusFor(err)

	entry := log.WithFields(fields).WithFields(log.Fields{
		"op":         op,
		"status":     status,
		"request_id": middleware.RequestIDFromContext(c),
		"error":      err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	c.JSON(status, ErrorResponse{Error: msg})
}

// BindError answers 400 for a request body that failed binding or validation.
func BindError(c *gin.Context, op string, err error) {
	log.WithFields(log.Fields{
		"op":          op,
		"request_id":  middleware.RequestIDFromContext(c),
		"remote_addr": c.ClientIP(),
		"error":       err.Error(),
	}).Warn("invalid request payload")
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
}

// IDParam parses the named path parameter as a positive ID.
// On failure it writes a 400 response and returns false.
func IDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
