package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Debt services last year's stock, finances this year's deficit and runs
// the debt sustainability assessment.
//
// New borrowing is the positive part of the deficit, split between domestic
// and external debt in proportion to the existing stock. A surplus repays
// debt in the same proportion, never below zero.
type Debt struct {
	cfg   config.DebtConfig
	stock state.DebtStock
}

// NewDebt seeds the stock from initial_debt_stock, or from
// initial_debt_gdp_ratio times initialGDP when no explicit stock is given.
func NewDebt(cfg config.DebtConfig, initialGDP float64) *Debt {
	return &Debt{cfg: cfg, stock: initialDebtStock(cfg, initialGDP)}
}

func initialDebtStock(cfg config.DebtConfig, initialGDP float64) state.DebtStock {
	s := cfg.InitialDebtStock
	dom, ext := s.Domestic, s.External
	if dom == 0 && ext == 0 {
		total := s.Total
		if total == 0 {
			total = cfg.InitialDebtGDPRatio * numeric.NonNegative(initialGDP)
		}
		dom = total * cfg.DomesticShare
		ext = total - dom
	}
	dom, ext = numeric.NonNegative(dom), numeric.NonNegative(ext)
	return state.DebtStock{Domestic: dom, External: ext, Total: dom + ext}
}

// InitialStock returns the stock before the first year.
func (d *Debt) InitialStock() state.DebtStock { return d.stock }

func (d *Debt) Name() state.Sector { return state.SectorDebt }

func (d *Debt) Consumes() []state.Dependency {
	return cur(state.FieldDeficit, state.FieldFiscalTotalRevenue, state.FieldGDP)
}

func (d *Debt) Publishes() []state.Field {
	return []state.Field{
		state.FieldDebtStockRecord, state.FieldDebtNewBorrow, state.FieldDebtService,
		state.FieldDebtDSA, state.FieldDebtStock,
	}
}

func (d *Debt) Advance(_ int, v state.View) state.Debt {
	prev := d.stock
	service := d.service(prev)

	share := d.cfg.DomesticShare
	if prev.Total > 0 {
		share = prev.Domestic / prev.Total
	}

	deficit := v.Deficit()
	newBorrowing := max(0, deficit)
	dom := prev.Domestic + newBorrowing*share - service.PrincipalDomestic
	ext := prev.External + newBorrowing*(1-share) - service.PrincipalExternal
	dom, ext = numeric.NonNegative(dom), numeric.NonNegative(ext)

	var repayment float64
	if surplus := max(0, -deficit); surplus > 0 && dom+ext > 0 {
		repayment = min(surplus, dom+ext)
		domShare := dom / (dom + ext)
		dom = numeric.NonNegative(dom - repayment*domShare)
		ext = numeric.NonNegative(ext - repayment*(1-domShare))
	}

	d.stock = state.DebtStock{Domestic: dom, External: ext, Total: dom + ext}

	return state.Debt{
		Valid:        true,
		Stock:        d.stock,
		NewBorrowing: newBorrowing,
		Repayment:    repayment,
		Service:      service,
		DSA:          d.assess(d.stock, service, v),
	}
}

func (d *Debt) service(s state.DebtStock) state.DebtService {
	out := state.DebtService{
		InterestDomestic:  s.Domestic * d.cfg.AvgInterestRateDomestic,
		InterestExternal:  s.External * d.cfg.AvgInterestRateExternal,
		PrincipalDomestic: s.Domestic * d.cfg.PrincipalRepaymentDomestic,
		PrincipalExternal: s.External * d.cfg.PrincipalRepaymentExternal,
	}
	out.TotalInterest = out.InterestDomestic + out.InterestExternal
	out.TotalPrincipal = out.PrincipalDomestic + out.PrincipalExternal
	out.TotalService = out.TotalInterest + out.TotalPrincipal
	return out
}

// assess uses the updated stock and this year's total revenue. Ratios whose
// denominator is not positive are missing and never breach.
func (d *Debt) assess(s state.DebtStock, service state.DebtService, v state.View) state.DSA {
	debtGDP := numeric.Ratio(s.Total, v.Economic().GDP)
	serviceRevenue := numeric.Ratio(service.TotalService, v.Fiscal().TotalRevenue)

	t := d.cfg.DSAThresholds
	return state.DSA{
		DebtToGDP:        debtGDP,
		ServiceToRevenue: serviceRevenue,
		Breached:         debtGDP.Valid && debtGDP.Float > t.DebtToGDP,
		ServiceBreached:  serviceRevenue.Valid && t.ServiceToRevenue > 0 && serviceRevenue.Float > t.ServiceToRevenue,
	}
}
