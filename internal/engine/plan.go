package engine

import (
	"errors"
	"fmt"
	"slices"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

var (
	// ErrUnmetDependency marks a step reading a field nothing provides in time.
	ErrUnmetDependency = errors.New("unmet dependency")
	// ErrConflictingPublisher marks two steps publishing the same field.
	ErrConflictingPublisher = errors.New("conflicting publisher")
	// ErrDuplicateStep marks a step name listed twice.
	ErrDuplicateStep = errors.New("duplicate step")
)

func planError(kind error, step state.Sector, field state.Field, msg string) error {
	b := ferrors.ConfigError(fmt.Sprintf("plan: step %s: %s", step, msg)).
		WithCause(kind).
		WithContext("step", string(step))
	if field != "" {
		b = b.WithContext("field", string(field))
	}
	return b.Build()
}

// ValidatePlan checks the step order against the declared dependencies.
// Same-year dependencies must be published by an earlier step; lagged ones
// must be published by some step or seeded before the first year. A field
// may have only one publisher unless it is a declared override.
func ValidatePlan(steps []Step) error {
	anywhere := make(map[state.Field]bool)
	for _, f := range state.SeededFields() {
		anywhere[f] = true
	}
	for _, st := range steps {
		for _, f := range st.Publishes {
			anywhere[f] = true
		}
	}

	seen := make(map[state.Sector]bool, len(steps))
	published := make(map[state.Field]state.Sector)
	for _, st := range steps {
		if seen[st.Name] {
			return planError(ErrDuplicateStep, st.Name, "", "listed more than once")
		}
		seen[st.Name] = true

		for _, dep := range st.Consumes {
			if dep.Lagged {
				if !anywhere[dep.Field] {
					return planError(ErrUnmetDependency, st.Name, dep.Field,
						fmt.Sprintf("lagged field %s is neither published nor seeded", dep.Field))
				}
				continue
			}
			if _, ok := published[dep.Field]; !ok {
				return planError(ErrUnmetDependency, st.Name, dep.Field,
					fmt.Sprintf("reads %s before any earlier step publishes it", dep.Field))
			}
		}
		for _, f := range st.Publishes {
			if prev, ok := published[f]; ok && prev != st.Name && state.Overrides[f] != st.Name {
				return planError(ErrConflictingPublisher, st.Name, f,
					fmt.Sprintf("%s already published by %s", f, prev))
			}
			published[f] = st.Name
		}
	}
	return nil
}

// PlanEntry describes one validated step for display.
type PlanEntry struct {
	Order     int      `json:"order"`
	Step      string   `json:"step"`
	Consumes  []string `json:"consumes,omitempty"`
	Publishes []string `json:"publishes,omitempty"`
}

// Describe renders steps for display, in order.
func Describe(steps []Step) []PlanEntry {
	out := make([]PlanEntry, 0, len(steps))
	for i, st := range steps {
		e := PlanEntry{Order: i + 1, Step: string(st.Name)}
		for _, d := range st.Consumes {
			e.Consumes = append(e.Consumes, d.String())
		}
		for _, f := range st.Publishes {
			e.Publishes = append(e.Publishes, string(f))
		}
		slices.Sort(e.Publishes)
		out = append(out, e)
	}
	return out
}
