package events

import (
	"errors"
	"net/http"
)

// Domain errors for event operations.
var (
	ErrNotFound    = errors.New("journey event not found")
	ErrDuplicate   = errors.New("journey event already exists")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps event domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
