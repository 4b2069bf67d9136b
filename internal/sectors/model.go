package sectors

import "github.com/deluair/BD-publicfinance-simulation/internal/state"

// Model is the contract every sector satisfies. O is the state record the
// sector produces.
type Model[O any] interface {
	Name() state.Sector
	// Consumes lists what Advance reads. Lagged dependencies see last year's
	// value; all others must be written earlier in the same year.
	Consumes() []state.Dependency
	// Publishes lists the fields the merged output provides to later readers.
	Publishes() []state.Field
	Advance(year int, v state.View) O
}

// Describer is the non-generic part of Model, used for plan validation and
// display.
type Describer interface {
	Name() state.Sector
	Consumes() []state.Dependency
	Publishes() []state.Field
}

func cur(fields ...state.Field) []state.Dependency {
	deps := make([]state.Dependency, 0, len(fields))
	for _, f := range fields {
		deps = append(deps, state.Current(f))
	}
	return deps
}

// normalizedIndex maps the 0-100 governance index onto [0, 1].
func normalizedIndex(v state.View) float64 {
	return v.Governance().Index / 100
}
