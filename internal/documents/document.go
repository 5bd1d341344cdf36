// Package documents implements the document domain for Wayfare: raw upload
// to blob storage, extraction through the document collaborator, and the
// parsed document records that drive timeline coverage.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// ParsedDocument is the structured record produced by document extraction.
// Its extracted timelines contribute process-type coverage for the journey.
type ParsedDocument struct {
	ID                 uuid.UUID           `json:"id"`
	JourneyID          uuid.UUID           `json:"journeyId"`
	SourceURI          string              `json:"sourceURI"`
	DocumentType       string              `json:"documentType,omitempty"`
	LLMSummary         string              `json:"llmSummary,omitempty"`
	ExtractedTimelines []ExtractedTimeline `json:"extractedTimelines"`
	ProcessedAt        time.Time           `json:"processedAt"`
}

// ExtractedTimeline is one process-type finding inside a parsed document.
// Upstream extractors label the process under either processType or
// timelineKey; ProcessLabel resolves whichever is present.
type ExtractedTimeline struct {
	ProcessType string   `json:"processType,omitempty"`
	TimelineKey string   `json:"timelineKey,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// ProcessLabel returns the raw process label, preferring processType.
func (t ExtractedTimeline) ProcessLabel() string {
	if t.ProcessType != "" {
		return t.ProcessType
	}
	return t.TimelineKey
}

// UploadCommand carries a raw document upload. Data holds the file bytes.
type UploadCommand struct {
	JourneyID   uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
	PageCount   *int
}

// ParsedRecord is an externally supplied parsed document (the collaborator
// push path). The journey id arrives as a string.
type ParsedRecord struct {
	JourneyID          string              `json:"journeyId"`
	SourceURI          string              `json:"sourceURI"`
	DocumentType       string              `json:"documentType"`
	LLMSummary         string              `json:"llmSummary"`
	ExtractedTimelines []ExtractedTimeline `json:"extractedTimelines"`
}

// Extraction is the document collaborator's response for one document.
type Extraction struct {
	DocumentType       string              `json:"documentType"`
	LLMSummary         string              `json:"llmSummary"`
	ExtractedTimelines []ExtractedTimeline `json:"extractedTimelines"`
}

// GenerateTrigger is invoked with the journey id after a parsed document is
// persisted, so timeline orchestration can run.
type GenerateTrigger func(journeyID uuid.UUID)
