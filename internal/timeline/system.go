package timeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/lifecycle"
)

// System defines the public contract for timeline orchestration.
type System interface {
	// Generate runs the generation workflow for a journey: coverage gate,
	// agent generation, validation, and application. Incomplete coverage under
	// the full-coverage policy marks the journey AWAITING_DOCUMENTS and stops.
	// Any failure marks the journey timeline status ERROR and leaves the
	// existing timeline untouched.
	Generate(ctx context.Context, journeyID uuid.UUID) error

	// Trigger schedules an asynchronous generation run.
	Trigger(journeyID uuid.UUID)

	// Start binds asynchronous runs to the lifecycle coordinator's context.
	Start(lc *lifecycle.Coordinator) error
}
