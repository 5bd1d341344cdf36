package datapoints

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/pagination"
	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a data point repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "datapoints"),
		pagination: pagination,
	}
}

func (r *repo) Handler(trigger EventTrigger) *Handler {
	return NewHandler(r, r.logger, r.pagination, trigger)
}

func (r *repo) Ingest(ctx context.Context, records []IngestRecord) (*IngestResult, []uuid.UUID, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	type outcome struct {
		result IngestResult
		events []uuid.UUID
	}

	out, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (outcome, error) {
		var o outcome

		for _, rec := range records {
			journeyID, err := uuid.Parse(rec.JourneyID)
			if err != nil {
				r.logger.Warn("skipping data point with no journeyId", "journeyId", rec.JourneyID)
				o.result.Skipped++
				continue
			}

			var exists bool
			if err := tx.QueryRowContext(
				ctx,
				"SELECT EXISTS (SELECT 1 FROM journeys WHERE id = $1)",
				journeyID,
			).Scan(&exists); err != nil {
				return o, fmt.Errorf("check journey %s: %w", journeyID, err)
			}
			if !exists {
				r.logger.Warn("skipping data point for unknown journey", "journeyId", journeyID)
				o.result.Skipped++
				continue
			}

			dpID := uuid.New()
			proposal := []byte(rec.Proposal)
			if len(proposal) == 0 {
				proposal = nil
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO data_points(id, journey_id, data_type, source_type, source_uri, retrieved_at, raw_content, confidence_score, proposal)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				dpID,
				journeyID,
				rec.DataType,
				rec.SourceType,
				rec.SourceURI,
				rec.RetrievedAt,
				rec.RawContent,
				rec.ConfidenceScore,
				proposal,
			); err != nil {
				return o, fmt.Errorf("insert data point: %w", err)
			}

			eventID := uuid.New()
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO journey_events(id, journey_id, data_point_id, status)
				 VALUES ($1, $2, $3, 'PENDING')`,
				eventID,
				journeyID,
				dpID,
			); err != nil {
				return o, fmt.Errorf("enqueue journey event: %w", err)
			}

			o.result.Accepted++
			o.events = append(o.events, eventID)
		}

		return o, nil
	})
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("data points ingested",
		"accepted", out.result.Accepted,
		"skipped", out.result.Skipped,
	)
	return &out.result, out.events, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[DataPoint], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "SourceURI", "RawContent")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count data points: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDataPoint)
	if err != nil {
		return nil, fmt.Errorf("query data points: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*DataPoint, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	dp, err := repository.QueryOne(ctx, r.db, q, args, scanDataPoint)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &dp, nil
}

func (r *repo) ExistingURIs(ctx context.Context, sourceType string) (map[string]struct{}, error) {
	return r.existingValues(
		ctx,
		"SELECT source_uri FROM data_points WHERE source_type = $1",
		sourceType,
	)
}

func (r *repo) ExistingContents(ctx context.Context, journeyID uuid.UUID, sourceType string) (map[string]struct{}, error) {
	return r.existingValues(
		ctx,
		"SELECT raw_content FROM data_points WHERE source_type = $1 AND journey_id = $2",
		sourceType, journeyID,
	)
}

func (r *repo) existingValues(ctx context.Context, q string, args ...any) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing data points: %w", err)
	}
	defer rows.Close()

	values := make(map[string]struct{})
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			values[v] = struct{}{}
		}
	}

	return values, rows.Err()
}
