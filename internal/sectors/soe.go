package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minSOEPerformance = 0.1
	maxSOEPerformance = 0.9

	// dividendThreshold is the performance above which SOEs pay dividends.
	dividendThreshold = 0.55
	// profitScale converts performance above break-even into profit per unit of debt.
	profitScale = 0.1
)

// SOE tracks state-owned enterprise performance and debt, and their fiscal
// link: dividends from profitable years, transfers for weak ones.
type SOE struct {
	cfg  config.SOEConfig
	life Lifecycle

	performance float64
	debt        float64
}

func NewSOE(cfg config.SOEConfig) *SOE {
	return &SOE{cfg: cfg, performance: cfg.InitialSOEPerformance}
}

func (s *SOE) Name() state.Sector { return state.SectorSOE }

func (s *SOE) Consumes() []state.Dependency {
	return cur(state.FieldGDP, state.FieldGDPGrowth, state.FieldGovIndex)
}

func (s *SOE) Publishes() []state.Field {
	return []state.Field{
		state.FieldSOEDividends, state.FieldSOETransfers, state.FieldSOEDebt,
		state.FieldSOEPerformance, state.FieldSOEDebtStock,
	}
}

func (s *SOE) Lifecycle() *Lifecycle { return &s.life }

func (s *SOE) Advance(year int, v state.View) state.SOE {
	econ := v.Economic()
	ready := s.life.activateIfReady(year, econ.GDP, func(gdp float64) {
		s.debt = s.cfg.InitialSOEDebtGDP * gdp
	})
	if !ready {
		return state.SOE{}
	}

	debtGDP := numeric.Ratio(s.debt, econ.GDP).Or(0)
	change := s.cfg.SOEGDPSensitivity*econ.GDPGrowth +
		s.cfg.SOEGovernanceSensitivity*(normalizedIndex(v)-0.5) +
		s.cfg.SOEDebtDrag*(debtGDP-s.cfg.InitialSOEDebtGDP)
	s.performance = numeric.Clamp(s.performance+change, minSOEPerformance, maxSOEPerformance)

	profit := (s.performance - 0.5) * s.debt * profitScale
	var dividends, transfers float64
	switch {
	case s.performance > dividendThreshold:
		dividends = profit * s.cfg.SOEDividendPayout
	case s.performance < s.cfg.SOETransferThreshold:
		transfers = (s.cfg.SOETransferThreshold - s.performance) * s.cfg.SOETransferScale * s.debt
	}

	s.debt = numeric.NonNegative(s.debt - profit + transfers - dividends)

	return state.SOE{
		Valid:           true,
		Dividends:       dividends,
		TransfersNeeded: transfers,
		Debt:            s.debt,
		Performance:     s.performance,
	}
}
