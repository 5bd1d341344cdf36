package timeline_test

import (
	"slices"
	"testing"

	"github.com/wayfare-app/wayfare/internal/documents"
	"github.com/wayfare-app/wayfare/internal/timeline"
)

func docWithLabels(labels ...string) documents.ParsedDocument {
	extracted := make([]documents.ExtractedTimeline, len(labels))
	for i, label := range labels {
		extracted[i] = documents.ExtractedTimeline{ProcessType: label}
	}
	return documents.ParsedDocument{ExtractedTimelines: extracted}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"VISA_APPLICATION", "VISA_APPLICATION", true},
		{"INSURANCE", "INSURANCE", true},
		{"PROOF_OF_FINANCE", "PROOF_OF_FINANCE", true},
		{"BANKACCOUNT", "BANKACCOUNT", true},
		{"PROOFFINANCE", "PROOF_OF_FINANCE", true},
		{"TRAVEL_HEALTH_INSURANCE", "INSURANCE", true},
		{"BLOCKED_ACCOUNT_RULES", "BANKACCOUNT", true},
		{"HOUSING", "", false},
		{"visa_application", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := timeline.Canonicalize(tt.label)
			if ok != tt.ok {
				t.Fatalf("Canonicalize(%q) ok = %v, want %v", tt.label, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	t.Run("unions across documents", func(t *testing.T) {
		docs := []documents.ParsedDocument{
			docWithLabels("VISA_APPLICATION"),
			docWithLabels("TRAVEL_HEALTH_INSURANCE", "PROOFFINANCE"),
			docWithLabels("BLOCKED_ACCOUNT_RULES"),
		}

		found := timeline.Coverage(docs)

		if len(found) != 4 {
			t.Errorf("coverage size = %d, want 4", len(found))
		}
		for _, p := range timeline.RequiredProcesses {
			if _, ok := found[p]; !ok {
				t.Errorf("coverage missing %s", p)
			}
		}
	})

	t.Run("unknown labels do not count", func(t *testing.T) {
		docs := []documents.ParsedDocument{docWithLabels("HOUSING", "PET_IMPORT")}

		found := timeline.Coverage(docs)

		if len(found) != 0 {
			t.Errorf("coverage size = %d, want 0", len(found))
		}
	})

	t.Run("falls back to timelineKey when processType is empty", func(t *testing.T) {
		docs := []documents.ParsedDocument{
			{ExtractedTimelines: []documents.ExtractedTimeline{{TimelineKey: "INSURANCE"}}},
		}

		found := timeline.Coverage(docs)

		if _, ok := found["INSURANCE"]; !ok {
			t.Error("coverage should resolve timelineKey labels")
		}
	})
}

func TestMissing(t *testing.T) {
	t.Run("empty coverage misses everything", func(t *testing.T) {
		missing := timeline.Missing(map[string]struct{}{})
		if !slices.Equal(missing, timeline.RequiredProcesses) {
			t.Errorf("missing = %v, want %v", missing, timeline.RequiredProcesses)
		}
	})

	t.Run("full coverage misses nothing", func(t *testing.T) {
		found := make(map[string]struct{})
		for _, p := range timeline.RequiredProcesses {
			found[p] = struct{}{}
		}

		missing := timeline.Missing(found)
		if len(missing) != 0 {
			t.Errorf("missing = %v, want empty", missing)
		}
	})

	t.Run("partial coverage reports the gap in canonical order", func(t *testing.T) {
		found := map[string]struct{}{
			"VISA_APPLICATION": {},
			"BANKACCOUNT":      {},
		}

		missing := timeline.Missing(found)
		want := []string{"INSURANCE", "PROOF_OF_FINANCE"}
		if !slices.Equal(missing, want) {
			t.Errorf("missing = %v, want %v", missing, want)
		}
	})
}

func TestHasCanonical(t *testing.T) {
	if !timeline.HasCanonical(docWithLabels("HOUSING", "PROOFFINANCE")) {
		t.Error("document with one alias label should count")
	}
	if timeline.HasCanonical(docWithLabels("HOUSING")) {
		t.Error("document without canonical labels should not count")
	}
	if timeline.HasCanonical(documents.ParsedDocument{}) {
		t.Error("document without extracted timelines should not count")
	}
}
