package ledger

import "github.com/deluair/BD-publicfinance-simulation/internal/numeric"

// Value is a metric value that may be missing.
type Value = numeric.Value

// Metric names one tracked column of the ledger.
type Metric string

const (
	MetricGDP                     Metric = "GDP"
	MetricGDPGrowth               Metric = "GDP_Growth"
	MetricInflation               Metric = "Inflation"
	MetricTotalRevenue            Metric = "Total_Revenue"
	MetricCentralRevenue          Metric = "Central_Revenue"
	MetricRevenueGDP              Metric = "Revenue_GDP"
	MetricTotalExpenditure        Metric = "Total_Expenditure"
	MetricCentralExpenditure      Metric = "Central_Expenditure"
	MetricExpenditureGDP          Metric = "Expenditure_GDP"
	MetricOverallDeficit          Metric = "Overall_Deficit"
	MetricPrimaryDeficit          Metric = "Primary_Deficit"
	MetricOverallDeficitGDP       Metric = "Overall_Deficit_GDP"
	MetricPrimaryDeficitGDP       Metric = "Primary_Deficit_GDP"
	MetricDebtStockTotal          Metric = "Debt_Stock_Total"
	MetricDebtStockDomestic       Metric = "Debt_Stock_Domestic"
	MetricDebtStockExternal       Metric = "Debt_Stock_External"
	MetricDebtStockGDP            Metric = "Debt_Stock_GDP"
	MetricDebtService             Metric = "Debt_Service"
	MetricInterestPayments        Metric = "Interest_Payments"
	MetricDSADebtGDP              Metric = "DSA_Debt_GDP_Ratio"
	MetricDSAServiceRevenue       Metric = "DSA_Service_Revenue_Ratio"
	MetricDSABreach               Metric = "DSA_Breach"
	MetricExports                 Metric = "Exports"
	MetricImports                 Metric = "Imports"
	MetricRemittances             Metric = "Remittances"
	MetricFDI                     Metric = "FDI"
	MetricCABGDP                  Metric = "CAB_GDP"
	MetricFXReserves              Metric = "FX_Reserves"
	MetricFXReservesMonths        Metric = "FX_Reserves_Months"
	MetricGovernanceIndex         Metric = "Governance_Index"
	MetricPFMScore                Metric = "PFM_Score"
	MetricNBRScore                Metric = "NBR_Score"
	MetricACScore                 Metric = "AC_Score"
	MetricAccountabilityScore     Metric = "Accountability_Score"
	MetricFinancialStability      Metric = "Financial_Stability_Index"
	MetricNPLRatio                Metric = "NPL_Ratio"
	MetricCARRatio                Metric = "CAR_Ratio"
	MetricPolicyRate              Metric = "Policy_Rate"
	MetricSupervision             Metric = "Supervision_Effectiveness"
	MetricSOEPerformance          Metric = "SOE_Performance"
	MetricSOEDebtGDP              Metric = "SOE_Debt_GDP"
	MetricSubnationalOwnRevenue   Metric = "Subnational_Own_Revenue"
	MetricSubnationalDebt         Metric = "Subnational_Debt"
	MetricGrantReceipts           Metric = "Grant_Receipts"
	MetricDFILending              Metric = "DFI_Lending"
	MetricExpenditureEfficiency   Metric = "Expenditure_Efficiency"
	MetricPolicyCoordinationScore Metric = "Policy_Coordination_Score"
)

var catalogue = []Metric{
	MetricGDP, MetricGDPGrowth, MetricInflation,
	MetricTotalRevenue, MetricCentralRevenue, MetricRevenueGDP,
	MetricTotalExpenditure, MetricCentralExpenditure, MetricExpenditureGDP,
	MetricOverallDeficit, MetricPrimaryDeficit, MetricOverallDeficitGDP, MetricPrimaryDeficitGDP,
	MetricDebtStockTotal, MetricDebtStockDomestic, MetricDebtStockExternal, MetricDebtStockGDP,
	MetricDebtService, MetricInterestPayments,
	MetricDSADebtGDP, MetricDSAServiceRevenue, MetricDSABreach,
	MetricExports, MetricImports, MetricRemittances, MetricFDI, MetricCABGDP,
	MetricFXReserves, MetricFXReservesMonths,
	MetricGovernanceIndex, MetricPFMScore, MetricNBRScore, MetricACScore, MetricAccountabilityScore,
	MetricFinancialStability, MetricNPLRatio, MetricCARRatio, MetricPolicyRate, MetricSupervision,
	MetricSOEPerformance, MetricSOEDebtGDP,
	MetricSubnationalOwnRevenue, MetricSubnationalDebt,
	MetricGrantReceipts, MetricDFILending,
	MetricExpenditureEfficiency, MetricPolicyCoordinationScore,
}

var metricIndex = func() map[Metric]int {
	idx := make(map[Metric]int, len(catalogue))
	for i, m := range catalogue {
		idx[m] = i
	}
	return idx
}()

// Catalogue returns the tracked metrics in column order.
func Catalogue() []Metric {
	out := make([]Metric, len(catalogue))
	copy(out, catalogue)
	return out
}

// isMetric reports whether m is a tracked metric.
func isMetric(m Metric) bool {
	_, ok := metricIndex[m]
	return ok
}

// Entry is one year's snapshot. Every tracked metric has a slot; unset slots
// are missing.
type Entry struct {
	Year   int
	values []Value
}

// NewEntry returns an entry for year with every metric missing.
func NewEntry(year int) Entry {
	return Entry{Year: year, values: make([]Value, len(catalogue))}
}

// Set stores v under m. Unknown metrics are ignored.
func (e *Entry) Set(m Metric, v Value) {
	i, ok := metricIndex[m]
	if !ok {
		return
	}
	if e.values == nil {
		e.values = make([]Value, len(catalogue))
	}
	e.values[i] = v
}

// SetFloat stores f under m; non-finite values become missing.
func (e *Entry) SetFloat(m Metric, f float64) {
	e.Set(m, numeric.Float(f))
}

// Get returns the value of m, missing if unset or unknown.
func (e Entry) Get(m Metric) Value {
	i, ok := metricIndex[m]
	if !ok || e.values == nil {
		return Value{}
	}
	return e.values[i]
}

// Values returns the metric values in catalogue order.
func (e Entry) Values() []Value {
	out := make([]Value, len(catalogue))
	copy(out, e.values)
	return out
}

func (e Entry) clone() Entry {
	return Entry{Year: e.Year, values: e.Values()}
}
