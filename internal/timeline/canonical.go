// Package timeline implements coverage tracking and LLM timeline generation
// for journeys. Generation runs as a state graph: collect parsed documents,
// gate on process coverage, generate steps through the configured agent, and
// apply the result to the journey.
package timeline

import (
	"slices"

	"github.com/wayfare-app/wayfare/internal/documents"
)

// Canonical process types. Every document-derived label is normalized into
// one of these four before it counts toward coverage.
const (
	ProcessVisaApplication = "VISA_APPLICATION"
	ProcessInsurance       = "INSURANCE"
	ProcessProofOfFinance  = "PROOF_OF_FINANCE"
	ProcessBankAccount     = "BANKACCOUNT"
)

// RequiredProcesses is the coverage set a journey must accumulate before
// timeline generation runs under the full-coverage policy.
var RequiredProcesses = []string{
	ProcessVisaApplication,
	ProcessInsurance,
	ProcessProofOfFinance,
	ProcessBankAccount,
}

var canonicalLabels = map[string]string{
	ProcessVisaApplication: ProcessVisaApplication,
	ProcessInsurance:       ProcessInsurance,
	ProcessProofOfFinance:  ProcessProofOfFinance,
	ProcessBankAccount:     ProcessBankAccount,

	"PROOFFINANCE":            ProcessProofOfFinance,
	"TRAVEL_HEALTH_INSURANCE": ProcessInsurance,
	"BLOCKED_ACCOUNT_RULES":   ProcessBankAccount,
}

// Canonicalize maps a raw process label to its canonical process type.
// Unrecognized labels report false and do not contribute to coverage.
func Canonicalize(label string) (string, bool) {
	canonical, ok := canonicalLabels[label]
	return canonical, ok
}

// Coverage unions the canonical process types found across all documents'
// extracted timelines.
func Coverage(docs []documents.ParsedDocument) map[string]struct{} {
	found := make(map[string]struct{})
	for _, doc := range docs {
		for _, t := range doc.ExtractedTimelines {
			if canonical, ok := Canonicalize(t.ProcessLabel()); ok {
				found[canonical] = struct{}{}
			}
		}
	}
	return found
}

// Missing returns the required process types absent from the coverage set,
// in canonical order.
func Missing(found map[string]struct{}) []string {
	missing := make([]string, 0)
	for _, p := range RequiredProcesses {
		if _, ok := found[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// HasCanonical reports whether a document contributes at least one canonical
// process type. Documents without one are dropped from the generation prompt.
func HasCanonical(doc documents.ParsedDocument) bool {
	return slices.ContainsFunc(doc.ExtractedTimelines, func(t documents.ExtractedTimeline) bool {
		_, ok := Canonicalize(t.ProcessLabel())
		return ok
	})
}
