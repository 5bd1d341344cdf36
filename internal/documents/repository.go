package documents

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/pagination"
	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
	"github.com/wayfare-app/wayfare/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	extractor  Extractor
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface. A nil
// extractor disables collaborator extraction; uploads are then stored with an
// empty extraction record.
func New(
	db *sql.DB,
	store storage.System,
	extractor Extractor,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		extractor:  extractor,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64, trigger GenerateTrigger) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize, trigger)
}

func (r *repo) Upload(ctx context.Context, cmd UploadCommand) (*ParsedDocument, error) {
	if cmd.JourneyID == uuid.Nil || cmd.Filename == "" || len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}

	if err := r.checkJourney(ctx, cmd.JourneyID); err != nil {
		return nil, err
	}

	key := buildStorageKey(cmd.JourneyID, sanitizeFilename(cmd.Filename))
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	sourceURI := r.storage.URI(key)

	extraction := &Extraction{ExtractedTimelines: []ExtractedTimeline{}}
	if r.extractor != nil {
		result, err := r.extractor.Extract(ctx, sourceURI, cmd.Filename, cmd.ContentType, cmd.Data)
		if err != nil {
			r.compensate(ctx, key)
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		extraction = result
	} else {
		r.logger.Warn("document collaborator not configured; storing without extraction", "key", key)
	}

	pd, err := r.insert(ctx, cmd.JourneyID, sourceURI, extraction)
	if err != nil {
		r.compensate(ctx, key)
		return nil, err
	}

	r.logger.Info("document uploaded",
		"id", pd.ID,
		"journey", pd.JourneyID,
		"key", key,
		"pages", cmd.PageCount,
	)
	return pd, nil
}

func (r *repo) CreateParsed(ctx context.Context, rec ParsedRecord) (*ParsedDocument, error) {
	journeyID, err := uuid.Parse(rec.JourneyID)
	if err != nil {
		return nil, ErrInvalidFile
	}

	if err := r.checkJourney(ctx, journeyID); err != nil {
		return nil, err
	}

	timelines := rec.ExtractedTimelines
	if timelines == nil {
		timelines = []ExtractedTimeline{}
	}

	pd, err := r.insert(ctx, journeyID, rec.SourceURI, &Extraction{
		DocumentType:       rec.DocumentType,
		LLMSummary:         rec.LLMSummary,
		ExtractedTimelines: timelines,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("parsed document registered", "id", pd.ID, "journey", pd.JourneyID)
	return pd, nil
}

func (r *repo) insert(
	ctx context.Context,
	journeyID uuid.UUID,
	sourceURI string,
	extraction *Extraction,
) (*ParsedDocument, error) {
	data, err := json.Marshal(extraction.ExtractedTimelines)
	if err != nil {
		return nil, fmt.Errorf("encode extracted timelines: %w", err)
	}

	q := `
		INSERT INTO parsed_documents(id, journey_id, source_uri, document_type, llm_summary, extracted_timelines)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, journey_id, source_uri, document_type, llm_summary, extracted_timelines, processed_at`

	args := []any{
		uuid.New(),
		journeyID,
		sourceURI,
		extraction.DocumentType,
		extraction.LLMSummary,
		data,
	}

	pd, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ParsedDocument, error) {
		return repository.QueryOne(ctx, tx, q, args, scanParsedDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &pd, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ParsedDocument], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "SourceURI", "LLMSummary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count parsed documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanParsedDocument)
	if err != nil {
		return nil, fmt.Errorf("query parsed documents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ParsedDocument, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	pd, err := repository.QueryOne(ctx, r.db, q, args, scanParsedDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &pd, nil
}

func (r *repo) ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]ParsedDocument, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "ProcessedAt"}).
		WhereEquals("JourneyID", &journeyID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanParsedDocument)
	if err != nil {
		return nil, fmt.Errorf("query parsed documents for journey: %w", err)
	}
	return items, nil
}

func (r *repo) checkJourney(ctx context.Context, journeyID uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM journeys WHERE id = $1)",
		journeyID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check journey %s: %w", journeyID, err)
	}
	if !exists {
		return ErrJourneyMissing
	}
	return nil
}

func (r *repo) compensate(ctx context.Context, key string) {
	if err := r.storage.Delete(ctx, key); err != nil {
		r.logger.Warn("compensating blob delete failed", "key", key, "error", err)
	}
}

func buildStorageKey(journeyID uuid.UUID, filename string) string {
	return fmt.Sprintf("journeys/%s/%s", journeyID, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
