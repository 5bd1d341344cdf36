// Package journeys implements the journey domain for Wayfare. A journey
// tracks one user's relocation from an origin to a destination country,
// including the generated process timeline and its lifecycle status.
package journeys

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Journey statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
)

// Timeline statuses. An empty timeline status means no generation has been
// attempted yet.
const (
	TimelineAwaitingDocuments = "AWAITING_DOCUMENTS"
	TimelineGenerated         = "GENERATED"
	TimelineError             = "ERROR"
)

// Step statuses.
const (
	StepNotStarted = "NOT_STARTED"
	StepInProgress = "IN_PROGRESS"
	StepCompleted  = "COMPLETED"
)

// StepDateLayout is the canonical layout for step dates: local ISO-8601
// without an offset.
const StepDateLayout = "2006-01-02T15:04:05"

// Journey represents one user's immigration journey.
type Journey struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             string        `json:"userId"`
	OriginCountry      string        `json:"originCountry"`
	DestinationCountry string        `json:"destinationCountry"`
	Nationality        string        `json:"nationality"`
	Purpose            string        `json:"purpose"`
	Status             string        `json:"status"`
	TimelineStatus     string        `json:"timelineStatus,omitempty"`
	Timeline           []ProcessStep `json:"timeline"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ProcessStep is one step in a journey timeline. Dates are strings in
// StepDateLayout; a bare date (2006-01-02) is accepted on input and
// normalized on write.
type ProcessStep struct {
	StepID             string   `json:"stepId"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Status             string   `json:"status"`
	EstimatedStartDate string   `json:"estimatedStartDate,omitempty"`
	EstimatedEndDate   string   `json:"estimatedEndDate,omitempty"`
	Dependencies       []string `json:"dependencies,omitempty"`
}

// CreateCommand carries the data needed to create a new journey. All fields
// are required.
type CreateCommand struct {
	UserID             string `json:"userId"`
	OriginCountry      string `json:"originCountry"`
	DestinationCountry string `json:"destinationCountry"`
	Nationality        string `json:"nationality"`
	Purpose            string `json:"purpose"`
}

// Validate reports the first missing required field.
func (c CreateCommand) Validate() error {
	for name, value := range map[string]string{
		"userId":             c.UserID,
		"originCountry":      c.OriginCountry,
		"destinationCountry": c.DestinationCountry,
		"nationality":        c.Nationality,
		"purpose":            c.Purpose,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}

// ParseStepDate parses a step date in StepDateLayout, accepting a bare date
// as a fallback.
func ParseStepDate(s string) (time.Time, error) {
	if t, err := time.Parse(StepDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ShiftStepDate parses a step date, shifts it by the given number of calendar
// days, and formats it back in StepDateLayout.
func ShiftStepDate(s string, days int) (string, error) {
	t, err := ParseStepDate(s)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(StepDateLayout), nil
}
