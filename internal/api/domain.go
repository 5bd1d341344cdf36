package api

import (
	"fmt"

	"github.com/wayfare-app/wayfare/internal/agents"
	"github.com/wayfare-app/wayfare/internal/datapoints"
	"github.com/wayfare-app/wayfare/internal/documents"
	"github.com/wayfare-app/wayfare/internal/events"
	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/internal/timeline"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Journeys   journeys.System
	DataPoints datapoints.System
	Events     events.System
	Documents  documents.System
	Timeline   timeline.System
	Agents     agents.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	journeySystem := journeys.New(db, runtime.Logger, runtime.Pagination)
	dataSystem := datapoints.New(db, runtime.Logger, runtime.Pagination)

	eventSystem := events.New(
		db,
		runtime.Logger,
		runtime.Pagination,
		events.Policy{
			ConfidenceThreshold: runtime.Orchestrator.ConfidenceThreshold,
			ShiftStartDates:     runtime.Orchestrator.ShiftStartDates,
		},
		runtime.Orchestrator.SweepIntervalDuration(),
	)

	extractor := documents.NewExtractor(
		runtime.Collaborators.DocumentURL,
		runtime.Collaborators.TimeoutDuration(),
		runtime.Logger,
	)

	documentSystem := documents.New(
		db,
		runtime.Storage,
		extractor,
		runtime.Logger,
		runtime.Pagination,
	)

	timelineSystem := timeline.New(
		runtime.Agent,
		documentSystem,
		journeySystem,
		runtime.Logger,
		timeline.Options{
			AllowPartialCoverage: runtime.Orchestrator.AllowPartialCoverage,
			GenerationTimeout:    runtime.Orchestrator.GenerationTimeoutDuration(),
		},
	)

	agentSystem := agents.New(
		journeySystem,
		dataSystem,
		agents.NewNewsClient(
			runtime.Collaborators.NewsURL,
			runtime.Collaborators.TimeoutDuration(),
			runtime.Logger,
		),
		agents.NewMailClient(
			runtime.Collaborators.MailURL,
			runtime.Collaborators.TimeoutDuration(),
			runtime.Logger,
		),
		eventSystem.Trigger,
		runtime.Logger,
		agents.Options{
			SinceDays:   runtime.Collaborators.SinceDays,
			MaxArticles: runtime.Collaborators.MaxArticles,
			UseLLM:      !runtime.Collaborators.DisableLLM,
			RunInterval: runtime.Collaborators.RunIntervalDuration(),
		},
	)

	return &Domain{
		Journeys:   journeySystem,
		DataPoints: dataSystem,
		Events:     eventSystem,
		Documents:  documentSystem,
		Timeline:   timelineSystem,
		Agents:     agentSystem,
	}
}

// Start registers the background domain workers with the lifecycle
// coordinator: the pending event sweep, timeline triggers, and the scheduled
// agent runner.
func (d *Domain) Start(runtime *Runtime) error {
	if err := d.Events.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("events start failed: %w", err)
	}
	if err := d.Timeline.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("timeline start failed: %w", err)
	}
	if err := d.Agents.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("agents start failed: %w", err)
	}
	return nil
}
