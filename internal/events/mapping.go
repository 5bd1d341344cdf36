package events

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "journey_events", "e").
	Project("id", "ID").
	Project("journey_id", "JourneyID").
	Project("data_point_id", "DataPointID").
	Project("status", "Status").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt").
	Project("processed_at", "ProcessedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for event queries. Nil fields
// are ignored. Filtering by status ERROR is the dead-letter view.
type Filters struct {
	JourneyID *uuid.UUID `json:"journeyId,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("JourneyID", f.JourneyID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("journey_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.JourneyID = &id
		}
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}

	return f
}

func scanEvent(s repository.Scanner) (JourneyEvent, error) {
	var e JourneyEvent
	err := s.Scan(
		&e.ID,
		&e.JourneyID,
		&e.DataPointID,
		&e.Status,
		&e.Notes,
		&e.CreatedAt,
		&e.ProcessedAt,
	)
	return e, err
}
