package journeys

import (
	"errors"
	"net/http"
)

// Domain errors for journey operations.
var (
	ErrNotFound     = errors.New("journey not found")
	ErrDuplicate    = errors.New("journey already exists")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidDate  = errors.New("invalid step date")
	ErrInvalidBody  = errors.New("invalid request body")
)

// MapHTTPStatus maps journey domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
