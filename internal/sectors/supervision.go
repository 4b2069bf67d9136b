package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minSupervision = 0.2
	maxSupervision = 0.95
)

// Supervision moves effectiveness toward a target built from central bank
// capacity and last year's banking stress, with heavy inertia.
type Supervision struct {
	cfg           config.SupervisionConfig
	effectiveness float64
}

func NewSupervision(cfg config.SupervisionConfig) *Supervision {
	return &Supervision{cfg: cfg, effectiveness: cfg.InitialEffectiveness}
}

func (s *Supervision) Name() state.Sector { return state.SectorSupervision }

func (s *Supervision) Consumes() []state.Dependency {
	return []state.Dependency{
		state.Current(state.FieldGovCBCapacity),
		state.Lagged(state.FieldNPLRatio),
	}
}

func (s *Supervision) Publishes() []state.Field {
	return []state.Field{state.FieldSupEffectiveness, state.FieldSupervisionEffectiveness}
}

func (s *Supervision) Advance(_ int, v state.View) state.Supervision {
	stability := max(0, 1-numeric.SafeDiv(v.NPLRatio(), s.cfg.NPLStressLevel, 0))
	target := s.cfg.CBCapacityWeight*v.Governance().CBCapacity +
		s.cfg.FinancialStabilityWeight*stability +
		s.cfg.RegulatoryReformImpact

	blended := s.cfg.Smoothing*s.effectiveness + (1-s.cfg.Smoothing)*target
	s.effectiveness = numeric.Clamp(blended, minSupervision, maxSupervision)

	return state.Supervision{Valid: true, Effectiveness: s.effectiveness}
}
