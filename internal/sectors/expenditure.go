package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Expenditure executes a budget sized from final revenue. Execution
// efficiency is the mean of PFM capacity and accountability.
type Expenditure struct {
	cfg config.ExpenditureConfig
}

func NewExpenditure(cfg config.ExpenditureConfig) *Expenditure {
	return &Expenditure{cfg: cfg}
}

func (e *Expenditure) Name() state.Sector { return state.SectorExpenditure }

func (e *Expenditure) Consumes() []state.Dependency {
	return cur(state.FieldRevFinal, state.FieldGovPFM, state.FieldGovAccountability)
}

func (e *Expenditure) Publishes() []state.Field {
	return []state.Field{state.FieldExpDevelopment, state.FieldExpNonDevelopment, state.FieldExpTotal, state.FieldExpEfficiency}
}

func (e *Expenditure) Advance(_ int, v state.View) state.Expenditure {
	gov := v.Governance()
	budget := numeric.NonNegative(v.Revenue().FinalRevenue * e.cfg.BudgetMultiplier)
	efficiency := numeric.Clamp((gov.PFM+gov.Accountability)/2, 0, 1)
	total := budget * efficiency

	return state.Expenditure{
		Valid:          true,
		Budget:         budget,
		Development:    total * e.cfg.DevelopmentShare,
		NonDevelopment: total * (1 - e.cfg.DevelopmentShare),
		Total:          total,
		Efficiency:     efficiency,
	}
}
