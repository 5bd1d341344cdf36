// Package events implements the journey event processor, the state machine
// at the center of Wayfare. Every accepted data point enqueues one PENDING
// event; processing evaluates the data point against the journey timeline
// and lands the event in exactly one terminal status.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event statuses. PENDING is the only non-terminal status; terminal statuses
// are final and never retried automatically.
const (
	StatusPending   = "PENDING"
	StatusProcessed = "PROCESSED"
	StatusIgnored   = "IGNORED"
	StatusError     = "ERROR"
)

// JourneyEvent links a data point to its journey and records the processing
// outcome.
type JourneyEvent struct {
	ID          uuid.UUID  `json:"id"`
	JourneyID   uuid.UUID  `json:"journeyId"`
	DataPointID uuid.UUID  `json:"dataPointId"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}
