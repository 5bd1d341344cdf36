package agents

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wayfare-app/wayfare/internal/datapoints"
	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/pkg/lifecycle"
)

const runnerConcurrency = 4

// Options holds the runner's collector policy.
type Options struct {
	// SinceDays is the lookback window passed to the news collaborator.
	SinceDays int

	// MaxArticles caps articles per news call.
	MaxArticles int

	// UseLLM enables LLM relevance filtering in the news collaborator.
	UseLLM bool

	// RunInterval is the scheduled run cadence. Non-positive disables
	// scheduled runs.
	RunInterval time.Duration
}

type runner struct {
	journeys journeys.System
	data     datapoints.System
	news     NewsClient
	mail     MailClient
	trigger  datapoints.EventTrigger
	logger   *slog.Logger
	opts     Options
	done     chan struct{}
}

// New creates the agent runner. Nil collaborator clients disable their agent.
func New(
	journeySys journeys.System,
	dataSys datapoints.System,
	news NewsClient,
	mail MailClient,
	trigger datapoints.EventTrigger,
	logger *slog.Logger,
	opts Options,
) System {
	return &runner{
		journeys: journeySys,
		data:     dataSys,
		news:     news,
		mail:     mail,
		trigger:  trigger,
		logger:   logger.With("system", "agents"),
		opts:     opts,
		done:     make(chan struct{}),
	}
}

func (r *runner) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *runner) Run(ctx context.Context, agentType string) (*Report, error) {
	if agentType != "" && agentType != AgentNews && agentType != AgentMail {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, agentType)
	}

	list, err := r.journeys.ListInProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}

	report := &Report{AgentType: agentType, Journeys: len(list)}

	if agentType == "" || agentType == AgentNews {
		r.runNews(ctx, list, report)
	}
	if agentType == "" || agentType == AgentMail {
		r.runMail(ctx, list, report)
	}

	r.logger.Info("agent run complete",
		"agent_type", agentType,
		"journeys", report.Journeys,
		"news_added", report.NewsAdded,
		"mail_added", report.MailAdded,
		"failures", report.Failures,
	)
	return report, nil
}

func (r *runner) runNews(ctx context.Context, list []journeys.Journey, report *Report) {
	if r.news == nil {
		r.logger.Warn("news collaborator not configured; skipping news agent")
		return
	}

	existing, err := r.data.ExistingURIs(ctx, datapoints.SourceNewsAPI)
	if err != nil {
		r.logger.Error("news dedupe lookup failed", "error", err)
		report.Failures++
		return
	}

	var added, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runnerConcurrency)

	for _, journey := range list {
		g.Go(func() error {
			resp, err := r.news.Scan(gctx, NewsRequest{
				Origin:      journey.OriginCountry,
				Destination: journey.DestinationCountry,
				SinceDays:   r.opts.SinceDays,
				MaxArticles: r.opts.MaxArticles,
				UseLLM:      r.opts.UseLLM,
			})
			if err != nil {
				r.logger.Error("news agent failed for journey", "journey", journey.ID, "error", err)
				failures.Add(1)
				return nil
			}

			fresh := make([]datapoints.IngestRecord, 0, len(resp.DataPoints))
			for _, rec := range resp.DataPoints {
				if _, seen := existing[rec.SourceURI]; seen {
					continue
				}
				rec.JourneyID = journey.ID.String()
				if rec.SourceType == "" {
					rec.SourceType = datapoints.SourceNewsAPI
				}
				fresh = append(fresh, rec)
			}
			if len(fresh) == 0 {
				return nil
			}

			result, events, err := r.data.Ingest(gctx, fresh)
			if err != nil {
				r.logger.Error("news intake failed for journey", "journey", journey.ID, "error", err)
				failures.Add(1)
				return nil
			}

			added.Add(int64(result.Accepted))
			if r.trigger != nil {
				r.trigger(events)
			}
			return nil
		})
	}

	g.Wait()
	report.NewsAdded += int(added.Load())
	report.Failures += int(failures.Load())
}

func (r *runner) runMail(ctx context.Context, list []journeys.Journey, report *Report) {
	if r.mail == nil {
		r.logger.Warn("mail collaborator not configured; skipping mail agent")
		return
	}

	var added, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runnerConcurrency)

	for _, journey := range list {
		// Journeys without a generated timeline have nothing to analyze.
		if len(journey.Timeline) == 0 {
			continue
		}

		g.Go(func() error {
			timeline := make(map[string]MailWindow, len(journey.Timeline))
			for _, step := range journey.Timeline {
				timeline[step.StepID] = MailWindow{
					StartDate: step.EstimatedStartDate,
					EndDate:   step.EstimatedEndDate,
				}
			}

			results, err := r.mail.Analyze(gctx, MailRequest{Timeline: timeline})
			if err != nil {
				r.logger.Error("mail agent failed for journey", "journey", journey.ID, "error", err)
				failures.Add(1)
				return nil
			}

			existing, err := r.data.ExistingContents(gctx, journey.ID, datapoints.SourceEmailAgent)
			if err != nil {
				r.logger.Error("mail dedupe lookup failed", "journey", journey.ID, "error", err)
				failures.Add(1)
				return nil
			}

			fresh := make([]datapoints.IngestRecord, 0, len(results))
			for _, rec := range results {
				if _, seen := existing[rec.RawContent]; seen {
					continue
				}
				rec.JourneyID = journey.ID.String()
				rec.SourceType = datapoints.SourceEmailAgent
				fresh = append(fresh, rec)
			}
			if len(fresh) == 0 {
				return nil
			}

			result, events, err := r.data.Ingest(gctx, fresh)
			if err != nil {
				r.logger.Error("mail intake failed for journey", "journey", journey.ID, "error", err)
				failures.Add(1)
				return nil
			}

			added.Add(int64(result.Accepted))
			if r.trigger != nil {
				r.trigger(events)
			}
			return nil
		})
	}

	g.Wait()
	report.MailAdded += int(added.Load())
	report.Failures += int(failures.Load())
}

// Start wires the scheduled runner into the lifecycle coordinator.
func (r *runner) Start(lc *lifecycle.Coordinator) error {
	if r.opts.RunInterval <= 0 {
		r.logger.Info("scheduled agent runs disabled")
		close(r.done)
		return nil
	}

	r.logger.Info("starting scheduled agent runs", "interval", r.opts.RunInterval)
	go r.runLoop(lc.Context())

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-r.done
		r.logger.Info("scheduled agent runs stopped")
	})

	return nil
}

func (r *runner) runLoop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.opts.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Run(ctx, ""); err != nil {
				r.logger.Error("scheduled agent run failed", "error", err)
			}
		}
	}
}
