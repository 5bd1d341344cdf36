package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/documents"
	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/pkg/formatting"
)

// State bag keys for the generation graph.
const (
	KeyJourneyID = "journey_id"
	KeyCovered   = "covered"
	KeyMissing   = "missing"
	KeyDocuments = "documents"
	KeySteps     = "steps"
)

func (s *service) buildGraph() (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("wayfare-timeline")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("collect", s.collectNode()); err != nil {
		return nil, err
	}
	if err := graph.AddNode("generate", s.generateNode()); err != nil {
		return nil, err
	}
	if err := graph.AddNode("apply", s.applyNode()); err != nil {
		return nil, err
	}

	// collect → generate when coverage satisfies the gate policy
	if err := graph.AddEdge("collect", "generate", covered); err != nil {
		return nil, err
	}

	// collect → apply when still awaiting documents
	if err := graph.AddEdge("collect", "apply", state.Not(covered)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("generate", "apply", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("collect"); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint("apply"); err != nil {
		return nil, err
	}

	return graph, nil
}

// collectNode loads all parsed documents for the journey and computes
// process-type coverage.
func (s *service) collectNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, st state.State) (state.State, error) {
		journeyID, err := journeyIDFrom(st)
		if err != nil {
			return st, fmt.Errorf("collect: %w", err)
		}

		docs, err := s.docs.ListByJourney(ctx, journeyID)
		if err != nil {
			return st, fmt.Errorf("collect: %w", err)
		}
		if len(docs) == 0 {
			return st, fmt.Errorf("collect: %w", ErrNoDocuments)
		}

		found := Coverage(docs)
		missing := Missing(found)
		isCovered := len(missing) == 0 || s.allowPartial

		s.logger.Info("coverage computed",
			"journey", journeyID,
			"documents", len(docs),
			"found", len(found),
			"missing", missing,
		)

		st = st.Set(KeyDocuments, docs)
		st = st.Set(KeyCovered, isCovered)
		st = st.Set(KeyMissing, missing)
		return st, nil
	})
}

// generateNode filters documents to those contributing canonical coverage,
// composes the prompt, calls the agent, and validates the parsed steps.
func (s *service) generateNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, st state.State) (state.State, error) {
		docsVal, ok := st.Get(KeyDocuments)
		if !ok {
			return st, fmt.Errorf("generate: missing %s in state", KeyDocuments)
		}
		docs, ok := docsVal.([]documents.ParsedDocument)
		if !ok {
			return st, fmt.Errorf("generate: %s is not []ParsedDocument", KeyDocuments)
		}

		relevant := make([]documents.ParsedDocument, 0, len(docs))
		for _, doc := range docs {
			if HasCanonical(doc) {
				relevant = append(relevant, doc)
			}
		}

		prompt, err := composePrompt(relevant, time.Now())
		if err != nil {
			return st, fmt.Errorf("generate: %w", err)
		}

		a, err := agent.New(&s.agent)
		if err != nil {
			return st, fmt.Errorf("generate: create agent: %w", err)
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return st, fmt.Errorf("generate: chat: %w", err)
		}

		steps, err := formatting.Parse[[]journeys.ProcessStep](resp.Content())
		if err != nil {
			return st, fmt.Errorf("generate: parse response: %w", err)
		}

		validated, err := ValidateSteps(steps)
		if err != nil {
			return st, fmt.Errorf("generate: %w", err)
		}

		s.logger.Info("timeline generated", "steps", len(validated))

		st = st.Set(KeySteps, validated)
		return st, nil
	})
}

// applyNode lands the workflow outcome on the journey: AWAITING_DOCUMENTS
// when coverage gated the run, otherwise the validated timeline with status
// GENERATED.
func (s *service) applyNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, st state.State) (state.State, error) {
		journeyID, err := journeyIDFrom(st)
		if err != nil {
			return st, fmt.Errorf("apply: %w", err)
		}

		if !covered(st) {
			missing, _ := st.Get(KeyMissing)
			s.logger.Info("awaiting documents", "journey", journeyID, "missing", missing)

			if err := s.journeys.SetTimelineStatus(ctx, journeyID, journeys.TimelineAwaitingDocuments); err != nil {
				return st, fmt.Errorf("apply: %w", err)
			}
			return st, nil
		}

		stepsVal, ok := st.Get(KeySteps)
		if !ok {
			return st, fmt.Errorf("apply: missing %s in state", KeySteps)
		}
		steps, ok := stepsVal.([]journeys.ProcessStep)
		if !ok {
			return st, fmt.Errorf("apply: %s is not []ProcessStep", KeySteps)
		}

		journey, err := s.journeys.Find(ctx, journeyID)
		if err != nil {
			return st, fmt.Errorf("apply: %w", err)
		}
		if len(journey.Timeline) > 0 {
			// Regeneration replaces the whole timeline, including any shifts
			// applied by processed proposals.
			s.logger.Warn("overwriting existing timeline",
				"journey", journeyID,
				"previous_steps", len(journey.Timeline),
			)
		}

		if err := s.journeys.ApplyGeneratedTimeline(ctx, journeyID, steps); err != nil {
			return st, fmt.Errorf("apply: %w", err)
		}

		return st, nil
	})
}

func covered(st state.State) bool {
	val, ok := st.Get(KeyCovered)
	if !ok {
		return false
	}
	c, ok := val.(bool)
	return ok && c
}

func journeyIDFrom(st state.State) (uuid.UUID, error) {
	val, ok := st.Get(KeyJourneyID)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing %s in state", KeyJourneyID)
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%s is not uuid.UUID", KeyJourneyID)
	}
	return id, nil
}
