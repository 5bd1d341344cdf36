package datapoints

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/pagination"
)

// System defines the public contract for data point domain operations.
type System interface {
	Handler(trigger EventTrigger) *Handler

	// Ingest persists a batch of data points and enqueues one PENDING journey
	// event per accepted record, all in a single transaction. Records without
	// a resolvable journey are logged and skipped. Returns the ids of the
	// enqueued events alongside the intake counts.
	Ingest(ctx context.Context, records []IngestRecord) (*IngestResult, []uuid.UUID, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[DataPoint], error)

	Find(ctx context.Context, id uuid.UUID) (*DataPoint, error)

	// ExistingURIs returns the set of source URIs already stored for a source
	// type, across all journeys. Used by the news agent for deduplication.
	ExistingURIs(ctx context.Context, sourceType string) (map[string]struct{}, error)

	// ExistingContents returns the set of raw content values already stored
	// for a journey and source type. Used by the mail agent for deduplication.
	ExistingContents(ctx context.Context, journeyID uuid.UUID, sourceType string) (map[string]struct{}, error)
}
