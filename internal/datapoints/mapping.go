package datapoints

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "data_points", "dp").
	Project("id", "ID").
	Project("journey_id", "JourneyID").
	Project("data_type", "DataType").
	Project("source_type", "SourceType").
	Project("source_uri", "SourceURI").
	Project("retrieved_at", "RetrievedAt").
	Project("raw_content", "RawContent").
	Project("confidence_score", "ConfidenceScore").
	Project("proposal", "Proposal").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for data point queries. Nil
// fields are ignored.
type Filters struct {
	JourneyID  *uuid.UUID `json:"journeyId,omitempty"`
	DataType   *string    `json:"dataType,omitempty"`
	SourceType *string    `json:"sourceType,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("JourneyID", f.JourneyID).
		WhereEquals("DataType", f.DataType).
		WhereEquals("SourceType", f.SourceType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("journey_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.JourneyID = &id
		}
	}
	if v := values.Get("data_type"); v != "" {
		f.DataType = &v
	}
	if v := values.Get("source_type"); v != "" {
		f.SourceType = &v
	}

	return f
}

func scanDataPoint(s repository.Scanner) (DataPoint, error) {
	var (
		dp       DataPoint
		proposal []byte
	)

	err := s.Scan(
		&dp.ID,
		&dp.JourneyID,
		&dp.DataType,
		&dp.SourceType,
		&dp.SourceURI,
		&dp.RetrievedAt,
		&dp.RawContent,
		&dp.ConfidenceScore,
		&proposal,
		&dp.CreatedAt,
	)
	if err != nil {
		return dp, err
	}

	if len(proposal) > 0 {
		if err := json.Unmarshal(proposal, &dp.Proposal); err != nil {
			return dp, err
		}
	}

	return dp, nil
}
