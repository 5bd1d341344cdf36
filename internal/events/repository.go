package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/datapoints"
	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/pkg/pagination"
	"github.com/wayfare-app/wayfare/pkg/query"
	"github.com/wayfare-app/wayfare/pkg/repository"
)

const sweepBatchSize = 100

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	policy     Policy
	sweep      time.Duration
	runCtx     context.Context
	done       chan struct{}
}

// New creates an event repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	policy Policy,
	sweepInterval time.Duration,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "events"),
		pagination: pagination,
		policy:     policy,
		sweep:      sweepInterval,
		runCtx:     context.Background(),
		done:       make(chan struct{}),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Process(ctx context.Context, id uuid.UUID) (*JourneyEvent, error) {
	ev, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (JourneyEvent, error) {
		ev, err := repository.QueryOne(
			ctx, tx,
			`SELECT id, journey_id, data_point_id, status, notes, created_at, processed_at
			 FROM journey_events WHERE id = $1 FOR UPDATE`,
			[]any{id}, scanEvent,
		)
		if err != nil {
			return ev, err
		}

		// Terminal statuses are final; reprocessing is a no-op.
		if ev.Status != StatusPending {
			return ev, nil
		}

		outcome := r.evaluate(ctx, tx, &ev)

		if outcome.Timeline != nil {
			data, err := json.Marshal(outcome.Timeline)
			if err != nil {
				return ev, fmt.Errorf("encode timeline: %w", err)
			}
			if err := repository.ExecExpectOne(
				ctx, tx,
				"UPDATE journeys SET timeline = $2, updated_at = now() WHERE id = $1",
				ev.JourneyID, data,
			); err != nil {
				return ev, fmt.Errorf("update journey timeline: %w", err)
			}
		}

		now := time.Now().UTC()
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE journey_events SET status = $2, notes = $3, processed_at = $4 WHERE id = $1",
			ev.ID, outcome.Status, outcome.Notes, now,
		); err != nil {
			return ev, fmt.Errorf("update journey event: %w", err)
		}

		ev.Status = outcome.Status
		ev.Notes = outcome.Notes
		ev.ProcessedAt = &now
		return ev, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("journey event processed",
		"id", ev.ID,
		"journey", ev.JourneyID,
		"status", ev.Status,
		"notes", ev.Notes,
	)
	return &ev, nil
}

// evaluate loads the data point and journey inside the claiming transaction
// and runs the pure decision function. Load failures become ERROR outcomes
// rather than aborting the transaction, so the event still lands terminally.
func (r *repo) evaluate(ctx context.Context, tx *sql.Tx, ev *JourneyEvent) Outcome {
	dp, err := loadDataPoint(ctx, tx, ev.DataPointID)
	if err != nil {
		return loadOutcome(err)
	}

	journey, err := loadJourney(ctx, tx, ev.JourneyID)
	if err != nil {
		return loadOutcome(err)
	}

	return Evaluate(dp, journey, r.policy)
}

func loadOutcome(err error) Outcome {
	if errors.Is(err, sql.ErrNoRows) {
		return Outcome{Status: StatusError, Notes: "data point or journey not found"}
	}
	return Outcome{Status: StatusError, Notes: err.Error()}
}

func loadDataPoint(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*datapoints.DataPoint, error) {
	var (
		dp       datapoints.DataPoint
		proposal []byte
	)

	err := tx.QueryRowContext(
		ctx,
		`SELECT id, journey_id, data_type, source_type, source_uri, retrieved_at, raw_content, confidence_score, proposal, created_at
		 FROM data_points WHERE id = $1`,
		id,
	).Scan(
		&dp.ID,
		&dp.JourneyID,
		&dp.DataType,
		&dp.SourceType,
		&dp.SourceURI,
		&dp.RetrievedAt,
		&dp.RawContent,
		&dp.ConfidenceScore,
		&proposal,
		&dp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(proposal) > 0 {
		if err := json.Unmarshal(proposal, &dp.Proposal); err != nil {
			return nil, fmt.Errorf("decode proposal: %w", err)
		}
	}

	return &dp, nil
}

// loadJourney reads the journey row with a row lock so concurrent event
// processing serializes timeline edits per journey.
func loadJourney(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*journeys.Journey, error) {
	var (
		j        journeys.Journey
		timeline []byte
	)

	err := tx.QueryRowContext(
		ctx,
		"SELECT id, timeline FROM journeys WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&j.ID, &timeline)
	if err != nil {
		return nil, err
	}

	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &j.Timeline); err != nil {
			return nil, fmt.Errorf("decode timeline: %w", err)
		}
	}

	return &j, nil
}

func (r *repo) ProcessPending(ctx context.Context) (int, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT id FROM journey_events WHERE status = 'PENDING' ORDER BY created_at LIMIT $1",
		sweepBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("query pending events: %w", err)
	}

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	processed := 0
	for _, id := range ids {
		ev, err := r.Process(ctx, id)
		if err != nil {
			r.logger.Error("pending sweep failed for event", "id", id, "error", err)
			continue
		}
		if ev.Status != StatusPending {
			processed++
		}
	}

	return processed, nil
}

func (r *repo) Trigger(ids []uuid.UUID) {
	go func() {
		for _, id := range ids {
			if _, err := r.Process(r.runCtx, id); err != nil {
				r.logger.Error("triggered processing failed for event", "id", id, "error", err)
			}
		}
	}()
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[JourneyEvent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Notes")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count journey events: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query journey events: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*JourneyEvent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	ev, err := repository.QueryOne(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ev, nil
}
