// Package datapoints implements the data point intake domain for Wayfare.
// Data points are immutable observations about a journey collected by agents
// or upstream services; each accepted data point enqueues one journey event
// for the timeline processor.
package datapoints

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Data types.
const (
	TypeInformational = "INFORMATIONAL"
	TypeProposal      = "PROPOSAL"
)

// Source types produced by the collector agents.
const (
	SourceNewsAPI    = "NEWS_API"
	SourceEmailAgent = "EMAIL_AGENT"
)

// ProposalActionUpdateStepStatus is the only proposal action the event
// processor understands.
const ProposalActionUpdateStepStatus = "UPDATE_STEP_STATUS"

// DataPoint is an immutable observation tied to a journey.
type DataPoint struct {
	ID              uuid.UUID `json:"id"`
	JourneyID       uuid.UUID `json:"journeyId"`
	DataType        string    `json:"dataType"`
	SourceType      string    `json:"sourceType,omitempty"`
	SourceURI       string    `json:"sourceURI,omitempty"`
	RetrievedAt     string    `json:"retrievedAt,omitempty"`
	RawContent      string    `json:"rawContent,omitempty"`
	ConfidenceScore float64   `json:"confidenceScore"`
	Proposal        *Proposal `json:"proposal,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Proposal is a suggested timeline edit carried by a PROPOSAL data point.
type Proposal struct {
	TargetStepKey string          `json:"targetStepKey"`
	Action        string          `json:"action"`
	Payload       ProposalPayload `json:"payload"`
	Reason        string          `json:"reason,omitempty"`
}

// ProposalPayload carries the edit parameters. ShiftDays is the number of
// calendar days to shift the target step's end date.
type ProposalPayload struct {
	ShiftDays *int    `json:"shiftDays,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

// IngestRecord is one incoming data point in a batch intake request. The
// journey id arrives as a string and records lacking a resolvable journey are
// skipped, not rejected. Proposal content is stored as received; validation
// happens at event processing time.
type IngestRecord struct {
	JourneyID       string          `json:"journeyId"`
	DataType        string          `json:"dataType"`
	SourceType      string          `json:"sourceType"`
	SourceURI       string          `json:"sourceURI"`
	RetrievedAt     string          `json:"retrievedAt"`
	RawContent      string          `json:"rawContent"`
	ConfidenceScore float64         `json:"confidenceScore"`
	Proposal        json.RawMessage `json:"proposal,omitempty"`
}

// IngestResult reports the outcome of a batch intake.
type IngestResult struct {
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}
