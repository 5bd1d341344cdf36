// Package agents implements the scheduled collector runner. On each run it
// walks every IN_PROGRESS journey, asks the news and mail collaborator
// services for fresh findings, deduplicates them against stored data points,
// and feeds the remainder through intake.
package agents

import (
	"context"

	"github.com/wayfare-app/wayfare/pkg/lifecycle"
)

// Agent types accepted by the run endpoint. Empty runs both.
const (
	AgentNews = "NEWS"
	AgentMail = "MAIL"
)

// Report summarizes one runner pass.
type Report struct {
	AgentType string `json:"agentType,omitempty"`
	Journeys  int    `json:"journeys"`
	NewsAdded int    `json:"newsAdded"`
	MailAdded int    `json:"mailAdded"`
	Failures  int    `json:"failures"`
}

// System defines the public contract for the agent runner.
type System interface {
	Handler() *Handler

	// Run executes the selected agents over all IN_PROGRESS journeys.
	// Per-journey failures are logged and counted, never fatal.
	Run(ctx context.Context, agentType string) (*Report, error)

	// Start registers the scheduled runner with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}
