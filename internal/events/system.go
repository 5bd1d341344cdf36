package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/lifecycle"
	"github.com/wayfare-app/wayfare/pkg/pagination"
)

// System defines the public contract for journey event processing.
type System interface {
	Handler() *Handler

	// Process runs a single event through the state machine. Claiming is
	// transactional: only an event still in PENDING is evaluated, so
	// concurrent triggers and sweeps cannot double-apply a proposal.
	// Processing a terminal event is a no-op returning its current state.
	Process(ctx context.Context, id uuid.UUID) (*JourneyEvent, error)

	// ProcessPending sweeps all PENDING events and processes each one.
	// Returns the number of events that reached a terminal status.
	ProcessPending(ctx context.Context) (int, error)

	// Trigger schedules asynchronous processing for freshly enqueued events.
	Trigger(ids []uuid.UUID)

	// Start registers the background pending sweep with the lifecycle
	// coordinator.
	Start(lc *lifecycle.Coordinator) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[JourneyEvent], error)

	Find(ctx context.Context, id uuid.UUID) (*JourneyEvent, error)
}
