package datapoints

import (
	"errors"
	"net/http"
)

// Domain errors for data point operations.
var (
	ErrNotFound    = errors.New("data point not found")
	ErrDuplicate   = errors.New("data point already exists")
	ErrEmptyBatch  = errors.New("request body must contain a dataPoints array")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps data point domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyBatch) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
