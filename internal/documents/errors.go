package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound       = errors.New("parsed document not found")
	ErrDuplicate      = errors.New("parsed document already exists")
	ErrJourneyMissing = errors.New("journey not found")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
	ErrInvalidFile    = errors.New("missing document file or journeyId")
	ErrExtraction     = errors.New("document extraction failed")
)

// MapHTTPStatus maps document domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrJourneyMissing) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrExtraction) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
