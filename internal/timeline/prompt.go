package timeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wayfare-app/wayfare/internal/documents"
)

// composePrompt builds the generation prompt from the filtered parsed
// documents and today's date. The agent must answer with a bare JSON array
// of steps restricted to the canonical process types.
func composePrompt(docs []documents.ParsedDocument, today time.Time) (string, error) {
	payload, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("encode documents: %w", err)
	}

	var b strings.Builder

	b.WriteString("You are an immigration planning assistant. ")
	b.WriteString("Using the parsed document evidence below, produce a step-by-step process timeline.\n\n")

	fmt.Fprintf(&b, "Today's date: %s\n\n", today.Format("2006-01-02"))

	b.WriteString("Parsed documents (JSON):\n")
	b.Write(payload)
	b.WriteString("\n\n")

	b.WriteString("Respond with a JSON array of steps. Each step has the fields: ")
	b.WriteString(`"stepId", "title", "description", "status", "estimatedStartDate", "estimatedEndDate", "dependencies".` + "\n")
	fmt.Fprintf(&b, "Valid stepId values, at most one step each: %s.\n", strings.Join(RequiredProcesses, ", "))
	b.WriteString("Dates use the ISO-8601 local format 2006-01-02T15:04:05 and must not precede today. ")
	b.WriteString(`"status" is always "NOT_STARTED". `)
	b.WriteString(`"dependencies" lists stepId values of steps that must finish first. `)
	b.WriteString("Respond with the JSON array only, no surrounding text.")

	return b.String(), nil
}
