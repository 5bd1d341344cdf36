package timeline

import (
	"fmt"

	"github.com/wayfare-app/wayfare/internal/journeys"
)

// ValidateSteps normalizes and validates a generated timeline. Step ids must
// canonicalize to distinct process types, dependencies must reference other
// emitted steps, and dates must parse. Missing statuses default to
// NOT_STARTED and dates are reformatted into the canonical layout.
func ValidateSteps(steps []journeys.ProcessStep) ([]journeys.ProcessStep, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyTimeline
	}

	out := make([]journeys.ProcessStep, len(steps))
	seen := make(map[string]struct{}, len(steps))

	for i, step := range steps {
		canonical, ok := Canonicalize(step.StepID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown stepId %q", ErrInvalidStep, step.StepID)
		}
		if _, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("%w: duplicate stepId %q", ErrInvalidStep, canonical)
		}
		seen[canonical] = struct{}{}

		step.StepID = canonical
		if step.Status == "" {
			step.Status = journeys.StepNotStarted
		}

		for _, field := range []*string{&step.EstimatedStartDate, &step.EstimatedEndDate} {
			if *field == "" {
				continue
			}
			t, err := journeys.ParseStepDate(*field)
			if err != nil {
				return nil, fmt.Errorf("%w: step %q: %w", ErrInvalidStep, canonical, err)
			}
			*field = t.Format(journeys.StepDateLayout)
		}

		out[i] = step
	}

	for i := range out {
		deps := make([]string, 0, len(out[i].Dependencies))
		for _, dep := range out[i].Dependencies {
			canonical, ok := Canonicalize(dep)
			if !ok {
				return nil, fmt.Errorf("%w: step %q depends on unknown step %q", ErrInvalidStep, out[i].StepID, dep)
			}
			if canonical == out[i].StepID {
				return nil, fmt.Errorf("%w: step %q depends on itself", ErrInvalidStep, out[i].StepID)
			}
			if _, present := seen[canonical]; !present {
				return nil, fmt.Errorf("%w: step %q depends on missing step %q", ErrInvalidStep, out[i].StepID, dep)
			}
			deps = append(deps, canonical)
		}
		if len(deps) > 0 {
			out[i].Dependencies = deps
		}
	}

	return out, nil
}
