package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/documents"
	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/pkg/lifecycle"
)

// Options holds the generation policy knobs.
type Options struct {
	// AllowPartialCoverage bypasses the full-coverage gate.
	AllowPartialCoverage bool

	// GenerationTimeout bounds one generation run. Non-positive disables the
	// bound.
	GenerationTimeout time.Duration
}

type service struct {
	agent        gaconfig.AgentConfig
	docs         documents.System
	journeys     journeys.System
	logger       *slog.Logger
	allowPartial bool
	timeout      time.Duration
	runCtx       context.Context
}

// New creates a timeline orchestration system.
func New(
	agent gaconfig.AgentConfig,
	docs documents.System,
	journeySys journeys.System,
	logger *slog.Logger,
	opts Options,
) System {
	return &service{
		agent:        agent,
		docs:         docs,
		journeys:     journeySys,
		logger:       logger.With("system", "timeline"),
		allowPartial: opts.AllowPartialCoverage,
		timeout:      opts.GenerationTimeout,
		runCtx:       context.Background(),
	}
}

func (s *service) Start(lc *lifecycle.Coordinator) error {
	s.runCtx = lc.Context()
	return nil
}

func (s *service) Trigger(journeyID uuid.UUID) {
	go func() {
		if err := s.Generate(s.runCtx, journeyID); err != nil {
			s.logger.Error("triggered generation failed", "journey", journeyID, "error", err)
		}
	}()
}

func (s *service) Generate(ctx context.Context, journeyID uuid.UUID) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	graph, err := s.buildGraph()
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyJourneyID, journeyID)

	if _, err := graph.Execute(ctx, initial); err != nil {
		s.markError(ctx, journeyID)
		return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	return nil
}

// markError records the failed generation attempt on the journey. The
// existing timeline is left untouched.
func (s *service) markError(ctx context.Context, journeyID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.journeys.SetTimelineStatus(ctx, journeyID, journeys.TimelineError); err != nil {
		s.logger.Error("failed to record timeline error status", "journey", journeyID, "error", err)
	}
}
