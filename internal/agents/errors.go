package agents

import (
	"errors"
	"net/http"
)

// Domain errors for agent runner operations.
var (
	ErrUnknownAgent = errors.New("unknown agent type")
	ErrInvalidBody  = errors.New("invalid request body")
)

// MapHTTPStatus maps agent runner errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownAgent) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
