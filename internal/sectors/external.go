package sectors

import (
	"math/rand/v2"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// External projects trade, remittance and FDI flows, the balance of
// payments and FX reserves. Flows are sized from GDP on first activation.
type External struct {
	cfg  config.ExternalConfig
	rng  *rand.Rand
	life Lifecycle

	exports, imports, remittances, fdi float64
	reserves                           float64
}

func NewExternal(cfg config.ExternalConfig, rng *rand.Rand) *External {
	return &External{cfg: cfg, rng: rng}
}

func (e *External) Name() state.Sector { return state.SectorExternal }

func (e *External) Consumes() []state.Dependency {
	return cur(state.FieldGDP, state.FieldGDPGrowth, state.FieldGovIndex)
}

func (e *External) Publishes() []state.Field {
	return []state.Field{
		state.FieldExtExports, state.FieldExtImports, state.FieldExtRemittances, state.FieldExtFDI,
		state.FieldExtCAB, state.FieldExtOverallBoP, state.FieldExtFXReserves,
		state.FieldExtReservesMonths, state.FieldExtCABGDP, state.FieldFXReserves,
	}
}

// Lifecycle exposes the initialisation state.
func (e *External) Lifecycle() *Lifecycle { return &e.life }

func (e *External) init(gdp float64) {
	e.exports = e.cfg.InitialExportGDP * gdp
	e.imports = e.cfg.InitialImportGDP * gdp
	e.remittances = e.cfg.InitialRemittanceGDP * gdp
	e.fdi = e.cfg.InitialFDIGDP * gdp
	e.reserves = e.imports * e.cfg.InitialReservesMonthsImport / 12
}

func (e *External) Advance(year int, v state.View) state.External {
	econ := v.Economic()
	if !e.life.activateIfReady(year, econ.GDP, e.init) {
		return state.External{}
	}

	g := econ.GDPGrowth
	gov := normalizedIndex(v)
	global := uniform(e.rng, e.cfg.GlobalFactorMin, e.cfg.GlobalFactorMax)

	e.exports = numeric.NonNegative(e.exports * (1 + g*0.5 + (global-1)*e.cfg.ExportGlobalGrowthSens))
	e.imports = numeric.NonNegative(e.imports * (1 + g*e.cfg.ImportDomesticGrowthSens))
	e.remittances = numeric.NonNegative(e.remittances * (1 + (global-1)*e.cfg.RemittanceGlobalGrowthSens))
	e.fdi = numeric.NonNegative(e.fdi * (1 + g + e.cfg.FDIGovernanceSens*(gov-0.5)))

	cab := e.exports - e.imports + e.remittances
	bop := cab + e.fdi
	e.reserves = numeric.NonNegative(e.reserves + bop)

	return state.External{
		Valid:          true,
		Exports:        e.exports,
		Imports:        e.imports,
		Remittances:    e.remittances,
		FDI:            e.fdi,
		CAB:            cab,
		OverallBoP:     bop,
		FXReserves:     e.reserves,
		ReservesMonths: numeric.SafeDiv(e.reserves, e.imports/12, 0),
		CABGDP:         numeric.Ratio(cab, econ.GDP),
	}
}
