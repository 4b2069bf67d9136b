package engine

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/sectors"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Step is one unit of the year loop.
type Step struct {
	Name      state.Sector
	Consumes  []state.Dependency
	Publishes []state.Field
	Run       func(year int, s *state.Shared) error
}

// bindSector adapts a typed sector model and its merge function into a step.
func bindSector[O any](m sectors.Model[O], merge func(*state.Shared, O) error) Step {
	return Step{
		Name:      m.Name(),
		Consumes:  m.Consumes(),
		Publishes: m.Publishes(),
		Run: func(year int, s *state.Shared) error {
			return merge(s, m.Advance(year, s.View()))
		},
	}
}
