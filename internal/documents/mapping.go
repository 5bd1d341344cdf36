package documents

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "parsed_documents", "pd").
	Project("id", "ID").
	Project("journey_id", "JourneyID").
	Project("source_uri", "SourceURI").
	Project("document_type", "DocumentType").
	Project("llm_summary", "LLMSummary").
	Project("extracted_timelines", "ExtractedTimelines").
	Project("processed_at", "ProcessedAt")

var defaultSort = query.SortField{
	Field:      "ProcessedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for parsed document queries.
// Nil fields are ignored.
type Filters struct {
	JourneyID    *uuid.UUID `json:"journeyId,omitempty"`
	DocumentType *string    `json:"documentType,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("JourneyID", f.JourneyID).
		WhereEquals("DocumentType", f.DocumentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("journey_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.JourneyID = &id
		}
	}
	if v := values.Get("document_type"); v != "" {
		f.DocumentType = &v
	}

	return f
}

func scanParsedDocument(s repository.Scanner) (ParsedDocument, error) {
	var (
		pd        ParsedDocument
		timelines []byte
	)

	err := s.Scan(
		&pd.ID,
		&pd.JourneyID,
		&pd.SourceURI,
		&pd.DocumentType,
		&pd.LLMSummary,
		&timelines,
		&pd.ProcessedAt,
	)
	if err != nil {
		return pd, err
	}

	if len(timelines) > 0 {
		if err := json.Unmarshal(timelines, &pd.ExtractedTimelines); err != nil {
			return pd, err
		}
	}
	if pd.ExtractedTimelines == nil {
		pd.ExtractedTimelines = []ExtractedTimeline{}
	}

	return pd, nil
}
