package sectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Simulation.StartYear = 2025
	cfg.Simulation.EndYear = 2030
	cfg.Simulation.InitialGDP = 1000
	return cfg
}

func sharedWith(mutate func(s *state.Shared)) *state.Shared {
	s := state.New(state.Initial{GDP: 1000, GDPGrowth: 0.06, RealGDPGrowth: 0.06, Inflation: 0.07, NPLRatio: 0.11})
	s.BeginYear(2025)
	s.Governance = state.Governance{Valid: true, Index: 50, PFM: 0.4, NBR: 0.5, CBCapacity: 0.6, AntiCorruption: 0.3, Accountability: 0.4}
	s.GovernanceIndex = 50
	if mutate != nil {
		mutate(s)
	}
	return s
}

func TestLifecycleTransitions(t *testing.T) {
	var l Lifecycle
	assert.Equal(t, Uninitialized, l.Phase())

	require.NoError(t, l.Transition(2026, Uninitialized, Active))
	assert.True(t, l.Active())
	assert.Equal(t, 2026, l.activatedIn())

	require.Error(t, l.Transition(2027, Uninitialized, Active), "already active")
	require.Error(t, l.Transition(2027, Active, Uninitialized), "no way back")
	assert.Equal(t, "active", l.Phase().String())
}

func TestExternalLazyInitialisation(t *testing.T) {
	cfg := testConfig()
	ext := NewExternal(cfg.External, NewStreams(1).For(state.SectorExternal))

	noGDP := sharedWith(func(s *state.Shared) { s.Economic.GDP = 0 })
	out := ext.Advance(2025, noGDP.View())
	assert.False(t, out.Valid)
	assert.Zero(t, out.FXReserves)
	assert.Equal(t, Uninitialized, ext.Lifecycle().Phase())

	withGDP := sharedWith(nil)
	out = ext.Advance(2026, withGDP.View())
	require.True(t, out.Valid)
	assert.Equal(t, 2026, ext.Lifecycle().activatedIn())
	assert.Greater(t, out.Imports, 0.0)
	assert.Greater(t, out.FXReserves, 0.0)
	assert.True(t, out.CABGDP.Valid)
}

func TestGDPDependentSectorsDeferInitialisation(t *testing.T) {
	cfg := testConfig()
	streams := NewStreams(3)
	noGDP := sharedWith(func(s *state.Shared) { s.Economic.GDP = 0 }).View()

	assert.False(t, NewDevFinance(cfg.DevFinance, streams.For(state.SectorDevFinance)).Advance(2025, noGDP).Valid)
	assert.False(t, NewFederalism(cfg.Federalism).Advance(2025, noGDP).Valid)
	assert.False(t, NewSOE(cfg.SOE).Advance(2025, noGDP).Valid)
}

func TestGovernanceLevelsCapped(t *testing.T) {
	cfg := testConfig()
	g := NewGovernance(cfg.Governance)
	v := sharedWith(nil).View()

	var out state.Governance
	for y := 0; y < 200; y++ {
		out = g.Advance(2025+y, v)
	}
	for _, level := range []float64{out.PFM, out.NBR, out.CBCapacity, out.AntiCorruption, out.Accountability} {
		assert.LessOrEqual(t, level, 0.95)
	}
	assert.InDelta(t, 95, out.Index, 1e-9)
}

func TestGovernanceFirstYear(t *testing.T) {
	cfg := testConfig()
	out := NewGovernance(cfg.Governance).Advance(2025, sharedWith(nil).View())

	// 0.415*.25 + 0.51*.2 + 0.605*.15 + 0.308*.2 + 0.412*.2
	assert.InDelta(t, 0.415, out.PFM, 1e-12)
	assert.InDelta(t, 44.05, out.Index, 1e-9)
}

func TestSupervisionBounds(t *testing.T) {
	cfg := testConfig()
	sup := NewSupervision(cfg.Supervision)
	stressed := sharedWith(func(s *state.Shared) {
		s.NPLRatio = 0.9
		s.Governance.CBCapacity = 0
	}).View()
	for y := 0; y < 100; y++ {
		out := sup.Advance(2025+y, stressed)
		assert.GreaterOrEqual(t, out.Effectiveness, 0.2)
		assert.LessOrEqual(t, out.Effectiveness, 0.95)
	}
}

func TestFinancialBounds(t *testing.T) {
	cfg := testConfig()
	fin := NewFinancial(cfg.Financial)
	boom := sharedWith(func(s *state.Shared) {
		s.Economic.GDPGrowth = 0.5
		s.Supervision = state.Supervision{Valid: true, Effectiveness: 0.95}
	}).View()

	for y := 0; y < 50; y++ {
		out := fin.Advance(2025+y, boom)
		assert.GreaterOrEqual(t, out.NPLRatio, 0.01)
		assert.GreaterOrEqual(t, out.CAR, 0.05)
		assert.LessOrEqual(t, out.CAR, 0.25)
		assert.GreaterOrEqual(t, out.StabilityIndex, 0.0)
		assert.LessOrEqual(t, out.StabilityIndex, 1.0)
	}

	bust := sharedWith(func(s *state.Shared) {
		s.Economic.GDPGrowth = -0.3
		s.Supervision = state.Supervision{Valid: true, Effectiveness: 0.2}
	}).View()
	var out state.Financial
	for y := 0; y < 100; y++ {
		out = fin.Advance(2075+y, bust)
	}
	assert.InDelta(t, 0.05, out.CAR, 1e-12)
	assert.Zero(t, out.StabilityIndex)
}

func TestMonetaryBounds(t *testing.T) {
	cfg := testConfig()
	for _, inflation := range []float64{0, 0.01, 0.05, 0.15, 0.5} {
		m := NewMonetary(cfg.Monetary)
		v := sharedWith(func(s *state.Shared) { s.Inflation = inflation }).View()
		for y := 0; y < 20; y++ {
			out := m.Advance(2025+y, v)
			assert.GreaterOrEqual(t, out.PolicyRate, 0.01)
			assert.LessOrEqual(t, out.PolicyRate, 0.15)
			assert.GreaterOrEqual(t, out.ProjectedInflation, 0.0)
			assert.LessOrEqual(t, out.ProjectedInflation, 0.20)
		}
	}
}

func TestMonetaryTightensAboveBand(t *testing.T) {
	cfg := testConfig()
	out := NewMonetary(cfg.Monetary).Advance(2025, sharedWith(nil).View())

	// rate = 0.06 + 1.5*(0.07-0.05) = 0.09; proj = 0.8*(0.07-0.1*0.03) + 0.2*0.07
	assert.InDelta(t, 0.09, out.PolicyRate, 1e-12)
	assert.InDelta(t, 0.0676, out.ProjectedInflation, 1e-12)
}

func TestRevenueTradeBaseFallback(t *testing.T) {
	cfg := testConfig()
	noExternal := NewRevenue(cfg.Revenue).Advance(2025, sharedWith(nil).View())
	withExternal := NewRevenue(cfg.Revenue).Advance(2025, sharedWith(func(s *state.Shared) {
		s.External = state.External{Valid: true, Imports: 500}
	}).View())

	// 1000*(0.4*0.15 + 0.3*0.1 + 0.2*0.25) + 200*0.05 = 150
	assert.InDelta(t, 150, noExternal.Potential, 1e-9)
	assert.InDelta(t, 150*0.7*0.7*0.6, noExternal.FinalRevenue, 1e-9)
	assert.InDelta(t, 165, withExternal.Potential, 1e-9)
}

func TestFederalismDebtCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.Federalism.SubnationalSpendingEfficiency = 3
	fed := NewFederalism(cfg.Federalism)
	v := sharedWith(func(s *state.Shared) { s.Revenue = state.Revenue{Valid: true, FinalRevenue: 100} }).View()

	for y := 0; y < 10; y++ {
		out := fed.Advance(2025+y, v)
		assert.LessOrEqual(t, out.Debt, 0.02*1000+1e-9)
		assert.GreaterOrEqual(t, out.Borrowing, 0.0)
	}
}

func TestExpenditureUsesGovernanceLevels(t *testing.T) {
	cfg := testConfig()
	out := NewExpenditure(cfg.Expenditure).Advance(2025, sharedWith(func(s *state.Shared) {
		s.Revenue = state.Revenue{Valid: true, FinalRevenue: 200}
		s.Governance.PFM = 0.5
		s.Governance.Accountability = 0.7
	}).View())

	assert.InDelta(t, 0.6, out.Efficiency, 1e-12)
	assert.InDelta(t, 120, out.Total, 1e-9)
	assert.InDelta(t, out.Total, out.Development+out.NonDevelopment, 1e-9)
}

func TestSOEBoundsAndFiscalLink(t *testing.T) {
	cfg := testConfig()
	weak := NewSOE(cfg.SOE)
	bad := sharedWith(func(s *state.Shared) {
		s.Economic.GDPGrowth = -0.2
		s.Governance.Index = 0
	}).View()
	out := weak.Advance(2025, bad)
	require.True(t, out.Valid)
	// 0.4 + 0.3*(-0.2) + 0.2*(0-0.5)
	assert.InDelta(t, 0.24, out.Performance, 1e-12)
	assert.Greater(t, out.TransfersNeeded, 0.0)
	assert.Zero(t, out.Dividends)

	strong := NewSOE(cfg.SOE)
	good := sharedWith(func(s *state.Shared) {
		s.Economic.GDPGrowth = 0.5
		s.Governance.Index = 100
	}).View()
	for y := 0; y < 30; y++ {
		out = strong.Advance(2025+y, good)
		assert.LessOrEqual(t, out.Performance, 0.9)
		assert.GreaterOrEqual(t, out.Debt, 0.0)
	}
	assert.InDelta(t, 0.9, out.Performance, 1e-12)
}

func TestDebtFromZeroStock(t *testing.T) {
	cfg := testConfig()
	d := NewDebt(cfg.Debt, 1000)
	require.Zero(t, d.InitialStock().Total)

	v := sharedWith(func(s *state.Shared) {
		s.Deficit = 25
		s.Fiscal = state.Fiscal{Valid: true, TotalRevenue: 100}
	}).View()
	out := d.Advance(2025, v)

	assert.InDelta(t, out.NewBorrowing, out.Stock.Total, 1e-12)
	assert.InDelta(t, 12.5, out.Stock.Domestic, 1e-12)
	assert.Zero(t, out.Service.TotalService)
	assert.InDelta(t, 0.025, out.DSA.DebtToGDP.Float, 1e-12)
}

func TestDebtServiceAndSurplus(t *testing.T) {
	cfg := testConfig()
	cfg.Debt.InitialDebtStock = config.DebtStockConfig{Domestic: 300, External: 100}
	d := NewDebt(cfg.Debt, 1000)

	out := d.Advance(2025, sharedWith(func(s *state.Shared) {
		s.Deficit = -1000
		s.Fiscal = state.Fiscal{Valid: true, TotalRevenue: 0}
	}).View())

	assert.InDelta(t, 300*0.08+100*0.03, out.Service.TotalInterest, 1e-9)
	assert.InDelta(t, 300*0.05+100*0.03, out.Service.TotalPrincipal, 1e-9)
	assert.Zero(t, out.NewBorrowing)
	assert.Zero(t, out.Stock.Total, "surplus repays at most the outstanding stock")
	assert.False(t, out.DSA.ServiceToRevenue.Valid, "no revenue means no ratio")
	assert.False(t, out.DSA.ServiceBreached)
}

func TestDebtSeededFromRatio(t *testing.T) {
	cfg := testConfig()
	cfg.Debt.InitialDebtGDPRatio = 0.4
	cfg.Debt.DomesticShare = 0.75
	s := NewDebt(cfg.Debt, 1000).InitialStock()

	assert.InDelta(t, 400, s.Total, 1e-9)
	assert.InDelta(t, 300, s.Domestic, 1e-9)
}

func TestDebtBreach(t *testing.T) {
	cfg := testConfig()
	cfg.Debt.InitialDebtStock = config.DebtStockConfig{Total: 900}
	out := NewDebt(cfg.Debt, 1000).Advance(2025, sharedWith(func(s *state.Shared) {
		s.Fiscal = state.Fiscal{Valid: true, TotalRevenue: 50}
	}).View())

	assert.True(t, out.DSA.Breached)
	assert.True(t, out.DSA.ServiceBreached)
}

func TestCoordinationBoundsAndConflict(t *testing.T) {
	cfg := testConfig()
	c := NewCoordination(cfg.Coordination)
	conflict := sharedWith(func(s *state.Shared) {
		s.Inflation = 0.12
		s.Deficit = 100
		s.GovernanceIndex = 20
	}).View()

	out := c.Advance(2025, conflict)
	assert.True(t, out.Conflict)
	assert.InDelta(t, 0.5, out.Score, 1e-12)
	for y := 0; y < 20; y++ {
		out = c.Advance(2026+y, conflict)
	}
	assert.InDelta(t, 0.1, out.Score, 1e-12)

	noGDP := sharedWith(func(s *state.Shared) {
		s.Economic.GDP = 0
		s.Inflation = 0.12
		s.Deficit = 100
	}).View()
	assert.False(t, NewCoordination(cfg.Coordination).Advance(2025, noGDP).Conflict)
}

func TestStreamsDeterministicAndIndependent(t *testing.T) {
	a := NewStreams(42).For(state.SectorExternal)
	b := NewStreams(42).For(state.SectorExternal)
	c := NewStreams(42).For(state.SectorDevFinance)

	x, y, z := a.Float64(), b.Float64(), c.Float64()
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
}

func TestRegistryOrderAndPublishes(t *testing.T) {
	cfg := testConfig()
	r := NewRegistry(&cfg, NewStreams(1))

	names := make([]state.Sector, 0, 12)
	for _, d := range r.all() {
		names = append(names, d.Name())
		assert.NotEmpty(t, d.Publishes(), "%s publishes nothing", d.Name())
	}
	assert.Equal(t, []state.Sector{
		state.SectorGovernance, state.SectorSupervision, state.SectorFinancial, state.SectorMonetary,
		state.SectorExternal, state.SectorDevFinance, state.SectorRevenue, state.SectorFederalism,
		state.SectorExpenditure, state.SectorSOE, state.SectorDebt, state.SectorCoordination,
	}, names)
	assert.Len(t, r.Lifecycles(), 4)
}
