package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Registry holds one instance of every sector model for a single run.
type Registry struct {
	Governance   *Governance
	Supervision  *Supervision
	Financial    *Financial
	Monetary     *Monetary
	External     *External
	DevFinance   *DevFinance
	Revenue      *Revenue
	Federalism   *Federalism
	Expenditure  *Expenditure
	SOE          *SOE
	Debt         *Debt
	Coordination *Coordination
}

// NewRegistry builds every sector from its config sub-document. Stochastic
// sectors draw from their own stream. No simulation state is needed.
func NewRegistry(cfg *config.Config, streams Streams) *Registry {
	return &Registry{
		Governance:   NewGovernance(cfg.Governance),
		Supervision:  NewSupervision(cfg.Supervision),
		Financial:    NewFinancial(cfg.Financial),
		Monetary:     NewMonetary(cfg.Monetary),
		External:     NewExternal(cfg.External, streams.For(state.SectorExternal)),
		DevFinance:   NewDevFinance(cfg.DevFinance, streams.For(state.SectorDevFinance)),
		Revenue:      NewRevenue(cfg.Revenue),
		Federalism:   NewFederalism(cfg.Federalism),
		Expenditure:  NewExpenditure(cfg.Expenditure),
		SOE:          NewSOE(cfg.SOE),
		Debt:         NewDebt(cfg.Debt, cfg.Simulation.InitialGDP),
		Coordination: NewCoordination(cfg.Coordination),
	}
}

// all returns the sectors in their year-loop order.
func (r *Registry) all() []Describer {
	return []Describer{
		r.Governance, r.Supervision, r.Financial, r.Monetary, r.External, r.DevFinance,
		r.Revenue, r.Federalism, r.Expenditure, r.SOE, r.Debt, r.Coordination,
	}
}

// Lifecycles reports the phase of every GDP-dependent sector.
func (r *Registry) Lifecycles() map[state.Sector]Phase {
	return map[state.Sector]Phase{
		state.SectorExternal:   r.External.Lifecycle().Phase(),
		state.SectorDevFinance: r.DevFinance.Lifecycle().Phase(),
		state.SectorFederalism: r.Federalism.Lifecycle().Phase(),
		state.SectorSOE:        r.SOE.Lifecycle().Phase(),
	}
}
