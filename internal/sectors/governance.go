package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Governance advances five institutional quality levels by fixed annual
// increments, each capped at MaxLevel, and combines them into a 0-100 index.
type Governance struct {
	cfg config.GovernanceConfig

	pfm, nbr, cb, ac, accountability float64
}

func NewGovernance(cfg config.GovernanceConfig) *Governance {
	return &Governance{
		cfg:            cfg,
		pfm:            cfg.InitialPFMLevel,
		nbr:            cfg.InitialNBRLevel,
		cb:             cfg.InitialCBLevel,
		ac:             cfg.InitialACLevel,
		accountability: cfg.InitialAccountabilityScore,
	}
}

func (g *Governance) Name() state.Sector           { return state.SectorGovernance }
func (g *Governance) Consumes() []state.Dependency { return nil }
func (g *Governance) Publishes() []state.Field {
	return []state.Field{
		state.FieldGovIndex, state.FieldGovPFM, state.FieldGovNBR, state.FieldGovCBCapacity,
		state.FieldGovAntiCorruption, state.FieldGovAccountability, state.FieldGovernanceIndex,
	}
}

func (g *Governance) Advance(_ int, _ state.View) state.Governance {
	ceiling := g.cfg.MaxLevel
	step := func(level, rate float64) float64 { return min(ceiling, level+rate) }

	g.pfm = step(g.pfm, g.cfg.PFMImprovementRate)
	g.nbr = step(g.nbr, g.cfg.NBRImprovementRate)
	g.cb = step(g.cb, g.cfg.CBImprovementRate)
	g.ac = step(g.ac, g.cfg.ACImprovementRate)
	g.accountability = step(g.accountability, g.cfg.AccountabilityImprovementRate)

	w := g.cfg.Weights
	index := g.pfm*w.PFM + g.nbr*w.NBR + g.cb*w.CB + g.ac*w.AntiCorruption + g.accountability*w.Accountability
	if total := w.PFM + w.NBR + w.CB + w.AntiCorruption + w.Accountability; total > 0 {
		index /= total
	}

	return state.Governance{
		Valid:          true,
		Index:          min(100, max(0, index*100)),
		PFM:            g.pfm,
		NBR:            g.nbr,
		CBCapacity:     g.cb,
		AntiCorruption: g.ac,
		Accountability: g.accountability,
	}
}
