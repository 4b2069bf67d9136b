package sectors

import (
	"math/rand/v2"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// DevFinance projects grant aid and net lending from development finance
// institutions. Both flows are sized from GDP on first activation.
type DevFinance struct {
	cfg  config.DevFinanceConfig
	rng  *rand.Rand
	life Lifecycle

	grants float64
	dfi    float64
}

func NewDevFinance(cfg config.DevFinanceConfig, rng *rand.Rand) *DevFinance {
	return &DevFinance{cfg: cfg, rng: rng}
}

func (d *DevFinance) Name() state.Sector { return state.SectorDevFinance }

func (d *DevFinance) Consumes() []state.Dependency {
	return cur(state.FieldGDP, state.FieldGDPGrowth, state.FieldGovIndex, state.FieldGovPFM)
}

func (d *DevFinance) Publishes() []state.Field {
	return []state.Field{state.FieldDevGrants, state.FieldDevDFILending}
}

func (d *DevFinance) Lifecycle() *Lifecycle { return &d.life }

func (d *DevFinance) Advance(year int, v state.View) state.DevFinance {
	econ := v.Economic()
	ready := d.life.activateIfReady(year, econ.GDP, func(gdp float64) {
		d.grants = d.cfg.InitialGrantAidGDP * gdp
		d.dfi = d.cfg.InitialDFINetLendingGDP * gdp
	})
	if !ready {
		return state.DevFinance{}
	}

	g := econ.GDPGrowth
	gov := v.Governance()
	aid := uniform(d.rng, d.cfg.AidFactorMin, d.cfg.AidFactorMax)

	grantFactor := (1 + g*0.2) *
		(1 + (aid-1)*d.cfg.GrantGlobalFactorSens) *
		(1 + (gov.PFM-0.5)*d.cfg.AbsorptionCapacitySens)
	d.grants = numeric.NonNegative(d.grants * grantFactor)

	dfiFactor := (1 + g*0.5) * (1 + (gov.Index/100-0.5)*d.cfg.DFILendingGovernanceSens)
	d.dfi = numeric.NonNegative(d.dfi * dfiFactor)

	return state.DevFinance{Valid: true, Grants: d.grants, DFINetLending: d.dfi}
}
