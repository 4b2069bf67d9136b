package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Tax base shares of GDP.
const (
	vatBaseShare       = 0.4
	incomeTaxBaseShare = 0.3
	corpTaxBaseShare   = 0.2
)

// Revenue estimates tax potential from GDP and imports, then applies the
// formal share of the economy, administrative efficiency and compliance.
// Efficiency and compliance drift upward after each year's collection.
type Revenue struct {
	cfg config.RevenueConfig

	admin      float64
	compliance float64
	formal     float64
}

func NewRevenue(cfg config.RevenueConfig) *Revenue {
	return &Revenue{
		cfg:        cfg,
		admin:      cfg.AdminCapacity.InitialEfficiency,
		compliance: cfg.ComplianceParams.InitialCompliance,
		formal:     1 - cfg.InformalityMetrics.InitialShare,
	}
}

func (r *Revenue) Name() state.Sector { return state.SectorRevenue }

// Consumes reads imports from this year's external sector; while that
// sector is inactive the trade base falls back to a share of GDP.
func (r *Revenue) Consumes() []state.Dependency {
	return cur(state.FieldGDP, state.FieldExtImports, state.FieldGovNBR)
}

func (r *Revenue) Publishes() []state.Field {
	return []state.Field{state.FieldRevFinal, state.FieldFinalRevenue}
}

func (r *Revenue) Advance(_ int, v state.View) state.Revenue {
	econ := v.Economic()
	gdp := numeric.NonNegative(econ.GDP)

	tradeBase := gdp * r.cfg.TradeBaseGDPShare
	if ext := v.External(); ext.Valid {
		tradeBase = ext.Imports
	}

	tax := r.cfg.TaxStructure
	potential := gdp*vatBaseShare*tax.VATRate +
		gdp*incomeTaxBaseShare*tax.AvgIncomeTaxRate +
		gdp*corpTaxBaseShare*tax.AvgCorpTaxRate +
		tradeBase*tax.AvgTradeTax

	final := numeric.NonNegative(potential * r.formal * r.admin * r.compliance)
	out := state.Revenue{
		Valid:           true,
		Potential:       potential,
		FinalRevenue:    final,
		AdminEfficiency: r.admin,
		ComplianceRate:  r.compliance,
	}

	if v.Governance().NBR > r.admin {
		r.admin = min(1, r.admin*1.01)
	}
	if econ.GDPGrowth > 0.05 {
		r.compliance = min(r.cfg.ComplianceParams.MaxCompliance, r.compliance*1.005)
	}
	return out
}
