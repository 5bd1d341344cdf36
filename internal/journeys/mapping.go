package journeys

import (
	"encoding/json"
	"net/url"

	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "journeys", "j").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("origin_country", "OriginCountry").
	Project("destination_country", "DestinationCountry").
	Project("nationality", "Nationality").
	Project("purpose", "Purpose").
	Project("status", "Status").
	Project("timeline_status", "TimelineStatus").
	Project("timeline", "Timeline").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for journey queries. Nil
// fields are ignored.
type Filters struct {
	UserID         *string `json:"userId,omitempty"`
	Status         *string `json:"status,omitempty"`
	TimelineStatus *string `json:"timelineStatus,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("Status", f.Status).
		WhereEquals("TimelineStatus", f.TimelineStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("user_id"); v != "" {
		f.UserID = &v
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}
	if v := values.Get("timeline_status"); v != "" {
		f.TimelineStatus = &v
	}

	return f
}

func scanJourney(s repository.Scanner) (Journey, error) {
	var (
		j        Journey
		timeline []byte
	)

	err := s.Scan(
		&j.ID,
		&j.UserID,
		&j.OriginCountry,
		&j.DestinationCountry,
		&j.Nationality,
		&j.Purpose,
		&j.Status,
		&j.TimelineStatus,
		&timeline,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return j, err
	}

	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &j.Timeline); err != nil {
			return j, err
		}
	}
	if j.Timeline == nil {
		j.Timeline = []ProcessStep{}
	}

	return j, nil
}
