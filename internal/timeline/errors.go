package timeline

import "errors"

// Generation errors.
var (
	ErrNoDocuments    = errors.New("no parsed documents for journey")
	ErrEmptyTimeline  = errors.New("generated timeline is empty")
	ErrInvalidStep    = errors.New("invalid generated step")
	ErrGenerateFailed = errors.New("timeline generation failed")
)
