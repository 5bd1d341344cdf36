package timeline_test

import (
	"errors"
	"testing"

	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/internal/timeline"
)

func TestValidateSteps(t *testing.T) {
	t.Run("empty timeline rejected", func(t *testing.T) {
		_, err := timeline.ValidateSteps(nil)
		if !errors.Is(err, timeline.ErrEmptyTimeline) {
			t.Errorf("err = %v, want ErrEmptyTimeline", err)
		}
	})

	t.Run("normalizes aliases, statuses, and dates", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{
				StepID:             "PROOFFINANCE",
				Title:              "Show proof of finance",
				EstimatedStartDate: "2025-10-01",
				EstimatedEndDate:   "2025-10-15T00:00:00",
			},
			{
				StepID: "VISA_APPLICATION",
				Title:  "Apply for visa",
				Status: journeys.StepInProgress,
			},
		}

		out, err := timeline.ValidateSteps(steps)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}

		if out[0].StepID != "PROOF_OF_FINANCE" {
			t.Errorf("stepId = %q, want PROOF_OF_FINANCE", out[0].StepID)
		}
		if out[0].Status != journeys.StepNotStarted {
			t.Errorf("status = %q, want NOT_STARTED default", out[0].Status)
		}
		if out[0].EstimatedStartDate != "2025-10-01T00:00:00" {
			t.Errorf("start date = %q, want normalized layout", out[0].EstimatedStartDate)
		}
		if out[0].EstimatedEndDate != "2025-10-15T00:00:00" {
			t.Errorf("end date = %q", out[0].EstimatedEndDate)
		}
		if out[1].Status != journeys.StepInProgress {
			t.Errorf("existing status overwritten: %q", out[1].Status)
		}
	})

	t.Run("unknown stepId rejected", func(t *testing.T) {
		_, err := timeline.ValidateSteps([]journeys.ProcessStep{{StepID: "HOUSING"}})
		if !errors.Is(err, timeline.ErrInvalidStep) {
			t.Errorf("err = %v, want ErrInvalidStep", err)
		}
	})

	t.Run("duplicate canonical stepIds rejected", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{StepID: "INSURANCE"},
			{StepID: "TRAVEL_HEALTH_INSURANCE"},
		}

		_, err := timeline.ValidateSteps(steps)
		if !errors.Is(err, timeline.ErrInvalidStep) {
			t.Errorf("err = %v, want ErrInvalidStep for duplicates", err)
		}
	})

	t.Run("unparseable date rejected", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{StepID: "INSURANCE", EstimatedEndDate: "next month"},
		}

		_, err := timeline.ValidateSteps(steps)
		if !errors.Is(err, timeline.ErrInvalidStep) {
			t.Errorf("err = %v, want ErrInvalidStep for bad dates", err)
		}
	})

	t.Run("dependencies normalize to canonical ids", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{StepID: "VISA_APPLICATION", Dependencies: []string{"PROOFFINANCE"}},
			{StepID: "PROOF_OF_FINANCE"},
		}

		out, err := timeline.ValidateSteps(steps)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if len(out[0].Dependencies) != 1 || out[0].Dependencies[0] != "PROOF_OF_FINANCE" {
			t.Errorf("dependencies = %v, want [PROOF_OF_FINANCE]", out[0].Dependencies)
		}
	})

	t.Run("dependency on missing step rejected", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{StepID: "VISA_APPLICATION", Dependencies: []string{"BANKACCOUNT"}},
		}

		_, err := timeline.ValidateSteps(steps)
		if !errors.Is(err, timeline.ErrInvalidStep) {
			t.Errorf("err = %v, want ErrInvalidStep for missing dependency", err)
		}
	})

	t.Run("self dependency rejected", func(t *testing.T) {
		steps := []journeys.ProcessStep{
			{StepID: "INSURANCE", Dependencies: []string{"TRAVEL_HEALTH_INSURANCE"}},
		}

		_, err := timeline.ValidateSteps(steps)
		if !errors.Is(err, timeline.ErrInvalidStep) {
			t.Errorf("err = %v, want ErrInvalidStep for self dependency", err)
		}
	})
}
