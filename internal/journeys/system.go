package journeys

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/pagination"
)

// System defines the public contract for journey domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Journey], error)

	Find(ctx context.Context, id uuid.UUID) (*Journey, error)
	Create(ctx context.Context, cmd CreateCommand) (*Journey, error)

	// ListInProgress returns all journeys with status IN_PROGRESS. Used by the
	// scheduled agent runner.
	ListInProgress(ctx context.Context) ([]Journey, error)

	// ApplyGeneratedTimeline replaces the journey timeline with a freshly
	// generated one, sets the timeline status to GENERATED, and promotes the
	// journey to IN_PROGRESS.
	ApplyGeneratedTimeline(ctx context.Context, id uuid.UUID, timeline []ProcessStep) error

	// SetTimelineStatus updates only the timeline status, leaving the timeline
	// itself untouched.
	SetTimelineStatus(ctx context.Context, id uuid.UUID, status string) error
}
