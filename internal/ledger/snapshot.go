package ledger

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Snapshot captures the tracked metrics from the state at the end of a year.
// Ratios to GDP are missing when GDP is not positive; sector metrics are
// missing while the sector is uninitialised.
func Snapshot(v state.View) Entry {
	e := NewEntry(v.Year())

	econ := v.Economic()
	gdp := econ.GDP
	perGDP := func(x float64) Value { return numeric.Ratio(x, gdp) }
	when := func(ok bool, x float64) Value {
		if !ok {
			return Value{}
		}
		return numeric.Float(x)
	}

	e.SetFloat(MetricGDP, gdp)
	e.SetFloat(MetricGDPGrowth, econ.GDPGrowth)
	e.SetFloat(MetricInflation, v.Inflation())

	fiscal := v.Fiscal()
	e.Set(MetricTotalRevenue, when(fiscal.Valid, fiscal.TotalRevenue))
	e.Set(MetricCentralRevenue, when(fiscal.Valid, fiscal.RevenueForCentralGov))
	e.Set(MetricTotalExpenditure, when(fiscal.Valid, fiscal.TotalExpenditure))
	e.Set(MetricCentralExpenditure, when(fiscal.Valid, fiscal.RealizedCentralSpending))
	e.SetFloat(MetricOverallDeficit, v.Deficit())
	e.SetFloat(MetricPrimaryDeficit, v.PrimaryDeficit())
	if fiscal.Valid {
		e.Set(MetricRevenueGDP, perGDP(fiscal.TotalRevenue))
		e.Set(MetricExpenditureGDP, perGDP(fiscal.TotalExpenditure))
	}
	e.Set(MetricOverallDeficitGDP, perGDP(v.Deficit()))
	e.Set(MetricPrimaryDeficitGDP, perGDP(v.PrimaryDeficit()))

	stock := v.DebtStock()
	e.SetFloat(MetricDebtStockTotal, stock.Total)
	e.SetFloat(MetricDebtStockDomestic, stock.Domestic)
	e.SetFloat(MetricDebtStockExternal, stock.External)
	e.Set(MetricDebtStockGDP, perGDP(stock.Total))

	debt := v.Debt()
	e.Set(MetricDebtService, when(debt.Valid, debt.Service.TotalService))
	e.Set(MetricInterestPayments, when(fiscal.Valid, fiscal.InterestPayments))
	if debt.Valid {
		e.Set(MetricDSADebtGDP, debt.DSA.DebtToGDP)
		e.Set(MetricDSAServiceRevenue, debt.DSA.ServiceToRevenue)
		if debt.DSA.DebtToGDP.Valid {
			e.Set(MetricDSABreach, numeric.Bool(debt.DSA.Breached))
		}
	}

	ext := v.External()
	e.Set(MetricExports, when(ext.Valid, ext.Exports))
	e.Set(MetricImports, when(ext.Valid, ext.Imports))
	e.Set(MetricRemittances, when(ext.Valid, ext.Remittances))
	e.Set(MetricFDI, when(ext.Valid, ext.FDI))
	e.Set(MetricFXReserves, when(ext.Valid, ext.FXReserves))
	e.Set(MetricFXReservesMonths, when(ext.Valid, ext.ReservesMonths))
	if ext.Valid {
		e.Set(MetricCABGDP, ext.CABGDP)
	}

	gov := v.Governance()
	e.Set(MetricGovernanceIndex, when(gov.Valid, gov.Index))
	e.Set(MetricPFMScore, when(gov.Valid, gov.PFM))
	e.Set(MetricNBRScore, when(gov.Valid, gov.NBR))
	e.Set(MetricACScore, when(gov.Valid, gov.AntiCorruption))
	e.Set(MetricAccountabilityScore, when(gov.Valid, gov.Accountability))

	fin := v.Financial()
	e.Set(MetricFinancialStability, when(fin.Valid, fin.StabilityIndex))
	e.Set(MetricNPLRatio, when(fin.Valid, fin.NPLRatio))
	e.Set(MetricCARRatio, when(fin.Valid, fin.CAR))

	mon := v.Monetary()
	e.Set(MetricPolicyRate, when(mon.Valid, mon.PolicyRate))
	sup := v.Supervision()
	e.Set(MetricSupervision, when(sup.Valid, sup.Effectiveness))

	soe := v.SOE()
	e.Set(MetricSOEPerformance, when(soe.Valid, soe.Performance))
	if soe.Valid {
		e.Set(MetricSOEDebtGDP, perGDP(soe.Debt))
	}

	fed := v.Federalism()
	e.Set(MetricSubnationalOwnRevenue, when(fed.Valid, fed.OwnRevenue))
	e.Set(MetricSubnationalDebt, when(fed.Valid, fed.Debt))

	dev := v.DevFinance()
	e.Set(MetricGrantReceipts, when(dev.Valid, dev.Grants))
	e.Set(MetricDFILending, when(dev.Valid, dev.DFINetLending))

	exp := v.Expenditure()
	e.Set(MetricExpenditureEfficiency, when(exp.Valid, exp.Efficiency))

	coord := v.Coordination()
	e.Set(MetricPolicyCoordinationScore, when(coord.Valid, coord.Score))

	return e
}
