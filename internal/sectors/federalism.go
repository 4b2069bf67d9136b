package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Federalism models revenue-share transfers to subnational governments, their
// own-source revenue and spending, and borrowing under a debt ceiling.
type Federalism struct {
	cfg  config.FederalismConfig
	life Lifecycle

	ownRevenue float64
	debt       float64
}

func NewFederalism(cfg config.FederalismConfig) *Federalism {
	return &Federalism{cfg: cfg}
}

func (f *Federalism) Name() state.Sector { return state.SectorFederalism }

func (f *Federalism) Consumes() []state.Dependency {
	return cur(state.FieldRevFinal, state.FieldGDP, state.FieldGDPGrowth, state.FieldInflation)
}

func (f *Federalism) Publishes() []state.Field {
	return []state.Field{state.FieldFedTransfers, state.FieldFedOwnRevenue, state.FieldFedSpending, state.FieldFedDebt}
}

func (f *Federalism) Lifecycle() *Lifecycle { return &f.life }

func (f *Federalism) Advance(year int, v state.View) state.Federalism {
	econ := v.Economic()
	ready := f.life.activateIfReady(year, econ.GDP, func(gdp float64) {
		f.ownRevenue = f.cfg.InitialSubnationalRevenueGDP * gdp
		f.debt = f.cfg.SubnationalDebtLimitGDP * gdp * 0.5
	})
	if !ready {
		return state.Federalism{}
	}

	transfers := numeric.NonNegative(v.Revenue().FinalRevenue * f.cfg.TransferRatioCentralRevenue)

	nominal := (1+econ.GDPGrowth)*(1+v.Inflation()) - 1
	f.ownRevenue = numeric.NonNegative(f.ownRevenue * (1 + nominal + f.cfg.SubnationalRevenueCapacityGrowth))

	resources := transfers + f.ownRevenue
	spending := numeric.NonNegative(resources * f.cfg.SpendingPropensity * f.cfg.SubnationalSpendingEfficiency)

	headroom := max(0, f.cfg.SubnationalDebtLimitGDP*numeric.NonNegative(econ.GDP)-f.debt)
	borrowing := min(max(0, spending-resources), headroom)
	f.debt = numeric.NonNegative(f.debt + borrowing)

	return state.Federalism{
		Valid:      true,
		Transfers:  transfers,
		OwnRevenue: f.ownRevenue,
		Spending:   spending,
		Debt:       f.debt,
		Borrowing:  borrowing,
	}
}
