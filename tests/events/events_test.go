package events_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/events"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", events.ErrNotFound, http.StatusNotFound},
		{"duplicate", events.ErrDuplicate, http.StatusConflict},
		{"invalid body", events.ErrInvalidBody, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", events.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := events.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		id := uuid.New()
		values := url.Values{
			"journey_id": {id.String()},
			"status":     {"ERROR"},
		}

		f := events.FiltersFromQuery(values)

		if f.JourneyID == nil || *f.JourneyID != id {
			t.Errorf("JourneyID = %v, want %s", f.JourneyID, id)
		}
		if f.Status == nil || *f.Status != "ERROR" {
			t.Errorf("Status = %v, want ERROR", f.Status)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := events.FiltersFromQuery(url.Values{})

		if f.JourneyID != nil {
			t.Errorf("JourneyID = %v, want nil", f.JourneyID)
		}
		if f.Status != nil {
			t.Errorf("Status = %v, want nil", f.Status)
		}
	})

	t.Run("invalid journey_id ignored", func(t *testing.T) {
		f := events.FiltersFromQuery(url.Values{"journey_id": {"not-a-uuid"}})

		if f.JourneyID != nil {
			t.Errorf("JourneyID = %v, want nil for invalid UUID", f.JourneyID)
		}
	})
}
