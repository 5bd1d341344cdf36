package events

import (
	"fmt"
	"slices"

	"github.com/wayfare-app/wayfare/internal/datapoints"
	"github.com/wayfare-app/wayfare/internal/journeys"
)

// Policy holds the evaluation knobs for proposal handling.
type Policy struct {
	// ConfidenceThreshold is the minimum confidence for a proposal to be
	// applied. Proposals below it are ignored, not errored.
	ConfidenceThreshold float64

	// ShiftStartDates extends date shifts to step start dates.
	ShiftStartDates bool
}

// Outcome is the decision produced by evaluating a data point against a
// journey. Timeline is non-nil only when the journey timeline must be
// replaced.
type Outcome struct {
	Status   string
	Notes    string
	Timeline []journeys.ProcessStep
}

// Evaluate decides the terminal status for a data point without touching any
// storage. The journey timeline is never mutated; a shifted copy is returned
// in the outcome when a proposal applies.
func Evaluate(dp *datapoints.DataPoint, journey *journeys.Journey, policy Policy) Outcome {
	switch dp.DataType {
	case datapoints.TypeInformational:
		return Outcome{
			Status: StatusProcessed,
			Notes:  "Informational data point stored. No action taken.",
		}

	case datapoints.TypeProposal:
		return evaluateProposal(dp, journey, policy)

	default:
		return Outcome{
			Status: StatusError,
			Notes:  fmt.Sprintf("unsupported data type %q", dp.DataType),
		}
	}
}

func evaluateProposal(dp *datapoints.DataPoint, journey *journeys.Journey, policy Policy) Outcome {
	proposal := dp.Proposal
	if proposal == nil || dp.ConfidenceScore < policy.ConfidenceThreshold {
		return Outcome{
			Status: StatusIgnored,
			Notes: fmt.Sprintf(
				"Proposal ignored due to low confidence (%v) or missing proposal.",
				dp.ConfidenceScore,
			),
		}
	}

	if proposal.Action != datapoints.ProposalActionUpdateStepStatus {
		return Outcome{
			Status: StatusError,
			Notes:  fmt.Sprintf("unsupported proposal action %q", proposal.Action),
		}
	}

	if proposal.TargetStepKey == "" || proposal.Payload.ShiftDays == nil {
		return Outcome{
			Status: StatusError,
			Notes:  "Proposal is missing targetStepKey or shiftDays.",
		}
	}

	target := proposal.TargetStepKey
	shiftDays := *proposal.Payload.ShiftDays

	idx := slices.IndexFunc(journey.Timeline, func(s journeys.ProcessStep) bool {
		return s.StepID == target
	})
	if idx == -1 {
		return Outcome{
			Status: StatusIgnored,
			Notes:  fmt.Sprintf("Target step '%s' not found in timeline.", target),
		}
	}

	timeline := slices.Clone(journey.Timeline)
	step := timeline[idx]

	shifted, err := journeys.ShiftStepDate(step.EstimatedEndDate, shiftDays)
	if err != nil {
		return Outcome{Status: StatusError, Notes: err.Error()}
	}
	step.EstimatedEndDate = shifted

	if policy.ShiftStartDates && step.EstimatedStartDate != "" {
		shifted, err := journeys.ShiftStepDate(step.EstimatedStartDate, shiftDays)
		if err != nil {
			return Outcome{Status: StatusError, Notes: err.Error()}
		}
		step.EstimatedStartDate = shifted
	}

	timeline[idx] = step

	return Outcome{
		Status:   StatusProcessed,
		Notes:    fmt.Sprintf("Timeline for step '%s' shifted by %d days.", target, shiftDays),
		Timeline: timeline,
	}
}
