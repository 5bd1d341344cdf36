package journeys

import (
	"context"
	"database/sql"
	"encoding/json"
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

// New creates a journey repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "journeys"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Journey], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "UserID", "OriginCountry", "DestinationCountry")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count journeys: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanJourney)
	if err != nil {
		return nil, fmt.Errorf("query journeys: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Journey, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	j, err := repository.QueryOne(ctx, r.db, q, args, scanJourney)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Journey, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO journeys(id, user_id, origin_country, destination_country, nationality, purpose, status, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, origin_country, destination_country, nationality, purpose, status, timeline_status, timeline, created_at, updated_at`

	args := []any{
		uuid.New(),
		cmd.UserID,
		cmd.OriginCountry,
		cmd.DestinationCountry,
		cmd.Nationality,
		cmd.Purpose,
		StatusPending,
		[]byte("[]"),
	}

	j, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Journey, error) {
		return repository.QueryOne(ctx, tx, q, args, scanJourney)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("journey created",
		"id", j.ID,
		"user", j.UserID,
		"origin", j.OriginCountry,
		"destination", j.DestinationCountry,
	)
	return &j, nil
}

func (r *repo) ListInProgress(ctx context.Context) ([]Journey, error) {
	status := StatusInProgress
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Status", &status).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanJourney)
	if err != nil {
		return nil, fmt.Errorf("query in-progress journeys: %w", err)
	}
	return items, nil
}

func (r *repo) ApplyGeneratedTimeline(ctx context.Context, id uuid.UUID, timeline []ProcessStep) error {
	data, err := json.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			`UPDATE journeys
			 SET timeline = $2, timeline_status = $3, status = $4, updated_at = now()
			 WHERE id = $1`,
			id, data, TimelineGenerated, StatusInProgress,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("generated timeline applied", "id", id, "steps", len(timeline))
	return nil
}

func (r *repo) SetTimelineStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE journeys SET timeline_status = $2, updated_at = now() WHERE id = $1",
		id, status,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("timeline status updated", "id", id, "timeline_status", status)
	return nil
}
