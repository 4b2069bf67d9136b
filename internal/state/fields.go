package state

// Sector identifies a writer of shared state: one of the twelve sector models
// or one of the orchestrator's own steps.
type Sector string

const (
	SectorGovernance   Sector = "governance"
	SectorSupervision  Sector = "supervision"
	SectorFinancial    Sector = "financial_sector"
	SectorMonetary     Sector = "monetary_policy"
	SectorExternal     Sector = "external_sector"
	SectorDevFinance   Sector = "development_finance"
	SectorRevenue      Sector = "revenue"
	SectorFederalism   Sector = "fiscal_federalism"
	SectorExpenditure  Sector = "expenditure"
	SectorSOE          Sector = "soe"
	SectorDebt         Sector = "debt"
	SectorCoordination Sector = "policy_coordination"

	// Orchestrator steps.
	StepEconomic       Sector = "economic_update"
	StepAggregates     Sector = "fiscal_aggregates"
	StepPrimaryDeficit Sector = "primary_deficit"
	StepSnapshot       Sector = "snapshot"

	// StepSeed marks values present before the first year runs.
	StepSeed Sector = "seed"
)

// Field names one readable value of shared state. Sub-record fields are
// prefixed with the record name; promoted fields are bare.
type Field string

const (
	FieldGDP           Field = "economic.gdp"
	FieldGDPGrowth     Field = "economic.gdp_growth"
	FieldRealGDPGrowth Field = "economic.real_gdp_growth"

	FieldGovIndex          Field = "governance.index"
	FieldGovPFM            Field = "governance.pfm"
	FieldGovNBR            Field = "governance.nbr"
	FieldGovCBCapacity     Field = "governance.cb_capacity"
	FieldGovAntiCorruption Field = "governance.anti_corruption"
	FieldGovAccountability Field = "governance.accountability"

	FieldSupEffectiveness Field = "supervision.effectiveness"

	FieldFinNPL       Field = "financial.npl"
	FieldFinCAR       Field = "financial.car"
	FieldFinStability Field = "financial.stability_index"

	FieldMonPolicyRate         Field = "monetary.policy_rate"
	FieldMonProjectedInflation Field = "monetary.projected_inflation"

	FieldExtExports        Field = "external.exports"
	FieldExtImports        Field = "external.imports"
	FieldExtRemittances    Field = "external.remittances"
	FieldExtFDI            Field = "external.fdi"
	FieldExtCAB            Field = "external.cab"
	FieldExtOverallBoP     Field = "external.overall_bop"
	FieldExtFXReserves     Field = "external.fx_reserves"
	FieldExtReservesMonths Field = "external.reserves_months"
	FieldExtCABGDP         Field = "external.cab_gdp"

	FieldDevGrants     Field = "devfinance.grants"
	FieldDevDFILending Field = "devfinance.dfi_net_lending"

	FieldRevFinal Field = "revenue.final_revenue"

	FieldFedTransfers  Field = "federalism.transfers"
	FieldFedOwnRevenue Field = "federalism.own_revenue"
	FieldFedSpending   Field = "federalism.spending"
	FieldFedDebt       Field = "federalism.debt"

	FieldExpDevelopment    Field = "expenditure.development"
	FieldExpNonDevelopment Field = "expenditure.non_development"
	FieldExpTotal          Field = "expenditure.total"
	FieldExpEfficiency     Field = "expenditure.efficiency"

	FieldSOEDividends   Field = "soe.dividends"
	FieldSOETransfers   Field = "soe.transfers_needed"
	FieldSOEDebt        Field = "soe.debt"
	FieldSOEPerformance Field = "soe.performance"

	FieldDebtStockRecord Field = "debt.stock"
	FieldDebtNewBorrow   Field = "debt.new_borrowing"
	FieldDebtService     Field = "debt.service"
	FieldDebtDSA         Field = "debt.dsa"

	FieldCoordScore Field = "coordination.score"

	FieldFiscalCentralRevenue  Field = "fiscal.revenue_for_central_gov"
	FieldFiscalTotalRevenue    Field = "fiscal.total_revenue"
	FieldFiscalCentralSpending Field = "fiscal.realized_central_spending"
	FieldFiscalTotalExpend     Field = "fiscal.total_expenditure"
	FieldFiscalInterest        Field = "fiscal.interest_payments"

	// Promoted top-level fields.
	FieldInflation                Field = "inflation"
	FieldDeficit                  Field = "deficit"
	FieldPrimaryDeficit           Field = "primary_deficit"
	FieldDebtStock                Field = "debt_stock"
	FieldSOEDebtStock             Field = "soe_debt_stock"
	FieldFXReserves               Field = "fx_reserves"
	FieldNPLRatio                 Field = "npl_ratio"
	FieldGovernanceIndex          Field = "governance_index"
	FieldSupervisionEffectiveness Field = "supervision_effectiveness"
	FieldPolicyRate               Field = "policy_rate"
	FieldFinalRevenue             Field = "final_revenue"
)

// Dependency is a field a step reads, either as written earlier in the same
// year or as left over from the previous year.
type Dependency struct {
	Field  Field
	Lagged bool
}

// Current declares a same-year dependency.
func Current(f Field) Dependency { return Dependency{Field: f} }

// Lagged declares a dependency on last year's (or the seeded) value.
func Lagged(f Field) Dependency { return Dependency{Field: f, Lagged: true} }

func (d Dependency) String() string {
	if d.Lagged {
		return string(d.Field) + " (lagged)"
	}
	return string(d.Field)
}

// Overrides lists the promoted fields a step may replace even though another
// step already wrote them this year.
var Overrides = map[Field]Sector{
	FieldDebtStock: SectorDebt,
}
