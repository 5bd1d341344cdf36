package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64, trigger GenerateTrigger) *Handler

	// Upload stores the raw document blob, runs extraction through the
	// document collaborator, and persists the resulting parsed record.
	Upload(ctx context.Context, cmd UploadCommand) (*ParsedDocument, error)

	// CreateParsed persists an externally supplied parsed document record.
	CreateParsed(ctx context.Context, rec ParsedRecord) (*ParsedDocument, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ParsedDocument], error)

	Find(ctx context.Context, id uuid.UUID) (*ParsedDocument, error)

	// ListByJourney returns all parsed documents for a journey, oldest first.
	// Used by timeline orchestration for coverage and prompt assembly.
	ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]ParsedDocument, error)
}
