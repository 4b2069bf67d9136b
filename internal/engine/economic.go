package engine

import (
	"math/rand/v2"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minInflation = 0.01
	maxInflation = 0.15
)

// economicUpdate advances GDP, growth and inflation at the start of a year.
type economicUpdate struct {
	sim config.SimulationConfig
	rng *rand.Rand
}

func (u *economicUpdate) step() Step {
	return Step{
		Name: state.StepEconomic,
		Consumes: []state.Dependency{
			state.Lagged(state.FieldGDP),
			state.Lagged(state.FieldInflation),
			state.Lagged(state.FieldMonProjectedInflation),
		},
		Publishes: []state.Field{
			state.FieldGDP, state.FieldGDPGrowth, state.FieldRealGDPGrowth, state.FieldInflation,
		},
		Run: func(year int, s *state.Shared) error {
			return s.MergeEconomic(u.advance(year, s.View()))
		},
	}
}

func (u *economicUpdate) advance(year int, v state.View) state.Economic {
	prevGDP := v.Economic().GDP

	// Always draw so a scenario override never shifts later years' noise.
	shock := u.rng.NormFloat64() * u.sim.GrowthVolatility
	realGrowth := u.sim.BaseRealGDPGrowth * (1 + shock)

	var base float64
	if m := v.Monetary(); m.Valid {
		base = m.ProjectedInflation
	} else {
		p := u.sim.InflationPersistence
		base = v.Inflation()*p + (1-p)*u.sim.InitialInflation
	}
	inflation := numeric.Clamp(base, minInflation, maxInflation)

	o, forced := u.sim.OverrideFor(year)
	if forced && o.RealGDPGrowth != nil {
		realGrowth = *o.RealGDPGrowth
	}
	if forced && o.Inflation != nil {
		inflation = *o.Inflation
	}

	gdp := prevGDP * (1 + realGrowth) * (1 + inflation)
	if forced && o.GDP != nil {
		gdp = *o.GDP
	}
	gdp = numeric.NonNegative(gdp)

	growth := 0.0
	if prevGDP > 0 {
		growth = numeric.SafeDiv(gdp, prevGDP, 1) - 1
	}

	return state.Economic{
		Valid:         true,
		GDP:           gdp,
		GDPGrowth:     growth,
		RealGDPGrowth: realGrowth,
		InflationRate: inflation,
	}
}
