package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minPolicyRate    = 0.01
	maxPolicyRate    = 0.15
	maxProjInflation = 0.20
)

// Monetary adjusts the policy rate on the gap between current inflation and
// the target band midpoint, then projects next year's inflation.
type Monetary struct {
	cfg  config.MonetaryConfig
	rate float64
}

func NewMonetary(cfg config.MonetaryConfig) *Monetary {
	return &Monetary{cfg: cfg, rate: cfg.InitialPolicyRate}
}

func (m *Monetary) Name() state.Sector { return state.SectorMonetary }

// Consumes includes the financial stability index so the plan keeps monetary
// policy after the banking sector, even though the rule only reads inflation.
func (m *Monetary) Consumes() []state.Dependency {
	return cur(state.FieldInflation, state.FieldFinStability)
}

func (m *Monetary) Publishes() []state.Field {
	return []state.Field{state.FieldMonPolicyRate, state.FieldMonProjectedInflation, state.FieldPolicyRate}
}

func (m *Monetary) Advance(_ int, v state.View) state.Monetary {
	inflation := v.Inflation()
	mid := (m.cfg.TargetInflationBand[0] + m.cfg.TargetInflationBand[1]) / 2

	m.rate = numeric.Clamp(m.rate+m.cfg.InflationGapWeight*(inflation-mid), minPolicyRate, maxPolicyRate)

	projected := inflation - m.cfg.PolicyTransmissionLag*(m.rate-m.cfg.NeutralRate)
	projected = 0.8*projected + 0.2*inflation

	return state.Monetary{
		Valid:              true,
		PolicyRate:         m.rate,
		ProjectedInflation: numeric.Clamp(projected, 0, maxProjInflation),
	}
}
