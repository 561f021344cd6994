package wizard

import (
	"errors"
	"net/http"
)

// Domain errors for wizard operations.
var (
	ErrNotFound      = errors.New("wizard session not found")
	ErrDuplicate     = errors.New("wizard session already exists")
	ErrForbidden     = errors.New("operation not permitted")
	ErrInvalidInput  = errors.New("invalid wizard input")
	ErrSessionClosed = errors.New("wizard session already completed")
	ErrAgentFailed   = errors.New("wizard agent inference failed")
)

// MapHTTPStatus maps wizard domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrSessionClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrAgentFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
