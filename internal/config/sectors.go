package config

// Sector sub-documents. Every key is optional: Load starts from
// DefaultSectors and overlays whatever the scenario file sets, so an explicit
// zero is honoured.

// GovernanceConfig parameterises institutional quality drift.
type GovernanceConfig struct {
	InitialPFMLevel            float64 `yaml:"initial_pfm_level"`
	InitialNBRLevel            float64 `yaml:"initial_nbr_level"`
	InitialCBLevel             float64 `yaml:"initial_cb_level"`
	InitialACLevel             float64 `yaml:"initial_ac_level"`
	InitialAccountabilityScore float64 `yaml:"initial_accountability_score"`

	PFMImprovementRate            float64 `yaml:"pfm_improvement_rate"`
	NBRImprovementRate            float64 `yaml:"nbr_improvement_rate"`
	CBImprovementRate             float64 `yaml:"cb_improvement_rate"`
	ACImprovementRate             float64 `yaml:"ac_improvement_rate"`
	AccountabilityImprovementRate float64 `yaml:"accountability_improvement_rate"`

	MaxLevel float64          `yaml:"max_level"`
	Weights  GovernanceWeights `yaml:"weights"`
}

// GovernanceWeights combine the five levels into the composite index.
type GovernanceWeights struct {
	PFM            float64 `yaml:"pfm"`
	NBR            float64 `yaml:"nbr"`
	CB             float64 `yaml:"cb"`
	AntiCorruption float64 `yaml:"anti_corruption"`
	Accountability float64 `yaml:"accountability"`
}

// SupervisionConfig parameterises central bank supervision effectiveness.
type SupervisionConfig struct {
	InitialEffectiveness     float64 `yaml:"initial_supervision_effectiveness"`
	CBCapacityWeight         float64 `yaml:"cb_capacity_weight"`
	FinancialStabilityWeight float64 `yaml:"financial_stability_weight"`
	RegulatoryReformImpact   float64 `yaml:"regulatory_reform_impact"`
	// Smoothing is the weight kept on last year's effectiveness.
	Smoothing float64 `yaml:"smoothing"`
	// NPLStressLevel is the NPL ratio at which the stability signal hits zero.
	NPLStressLevel float64 `yaml:"npl_stress_level"`
}

// FinancialConfig parameterises the banking sector.
type FinancialConfig struct {
	InitialNPLRatio           float64 `yaml:"initial_npl_ratio"`
	InitialCAR                float64 `yaml:"initial_car"`
	RequiredCAR               float64 `yaml:"required_car"`
	NPLGDPSensitivity         float64 `yaml:"npl_gdp_sensitivity"`
	NPLSupervisionSensitivity float64 `yaml:"npl_supervision_sensitivity"`
	TrendGrowth               float64 `yaml:"trend_growth"`
	BaselineSupervision       float64 `yaml:"baseline_supervision"`
}

// MonetaryConfig parameterises the policy-rate rule.
type MonetaryConfig struct {
	TargetInflationBand   []float64 `yaml:"target_inflation_band"`
	InitialPolicyRate     float64   `yaml:"initial_policy_rate"`
	InflationGapWeight    float64   `yaml:"inflation_gap_weight"`
	PolicyTransmissionLag float64   `yaml:"policy_transmission_lag"`
	NeutralRate           float64   `yaml:"neutral_rate"`
}

// ExternalConfig parameterises trade, remittance and reserve flows.
type ExternalConfig struct {
	InitialExportGDP            float64 `yaml:"initial_export_gdp"`
	InitialImportGDP            float64 `yaml:"initial_import_gdp"`
	InitialRemittanceGDP        float64 `yaml:"initial_remittance_gdp"`
	InitialFDIGDP               float64 `yaml:"initial_fdi_gdp"`
	InitialReservesMonthsImport float64 `yaml:"initial_reserves_months_import"`

	ExportGlobalGrowthSens     float64 `yaml:"export_global_growth_sens"`
	ImportDomesticGrowthSens   float64 `yaml:"import_domestic_growth_sens"`
	RemittanceGlobalGrowthSens float64 `yaml:"remittance_global_growth_sens"`
	FDIGovernanceSens          float64 `yaml:"fdi_governance_sens"`

	// The global demand factor is drawn uniformly from [GlobalFactorMin, GlobalFactorMax] each year.
	GlobalFactorMin float64 `yaml:"global_factor_min"`
	GlobalFactorMax float64 `yaml:"global_factor_max"`
}

// DevFinanceConfig parameterises grant aid and DFI lending.
type DevFinanceConfig struct {
	InitialGrantAidGDP        float64 `yaml:"initial_grant_aid_gdp"`
	InitialDFINetLendingGDP   float64 `yaml:"initial_dfi_net_lending_gdp"`
	GrantGlobalFactorSens     float64 `yaml:"grant_global_factor_sens"`
	DFILendingGovernanceSens  float64 `yaml:"dfi_lending_governance_sens"`
	AbsorptionCapacitySens    float64 `yaml:"absorption_capacity_sens"`
	AidFactorMin              float64 `yaml:"aid_factor_min"`
	AidFactorMax              float64 `yaml:"aid_factor_max"`
}

// RevenueConfig parameterises tax potential and collection.
type RevenueConfig struct {
	TaxStructure       TaxStructure       `yaml:"tax_structure"`
	AdminCapacity      AdminCapacity      `yaml:"admin_capacity"`
	ComplianceParams   ComplianceParams   `yaml:"compliance_params"`
	InformalityMetrics InformalityMetrics `yaml:"informality_metrics"`
	// TradeBaseGDPShare stands in for imports while the external sector is inactive.
	TradeBaseGDPShare float64 `yaml:"trade_base_gdp_share"`
}

// TaxStructure holds statutory or average effective rates.
type TaxStructure struct {
	VATRate          float64 `yaml:"vat_rate"`
	AvgIncomeTaxRate float64 `yaml:"avg_income_tax_rate"`
	AvgCorpTaxRate   float64 `yaml:"avg_corp_tax_rate"`
	AvgTradeTax      float64 `yaml:"avg_trade_tax"`
}

type AdminCapacity struct {
	InitialEfficiency float64 `yaml:"initial_efficiency"`
}

type ComplianceParams struct {
	InitialCompliance float64 `yaml:"initial_compliance"`
	MaxCompliance     float64 `yaml:"max_compliance"`
}

type InformalityMetrics struct {
	InitialShare float64 `yaml:"initial_share"`
}

// FederalismConfig parameterises central-to-subnational transfers.
type FederalismConfig struct {
	TransferRatioCentralRevenue      float64 `yaml:"transfer_ratio_central_revenue"`
	InitialSubnationalRevenueGDP     float64 `yaml:"initial_subnational_revenue_gdp"`
	SubnationalRevenueCapacityGrowth float64 `yaml:"subnational_revenue_capacity_growth"`
	SubnationalSpendingEfficiency    float64 `yaml:"subnational_spending_efficiency"`
	SubnationalDebtLimitGDP          float64 `yaml:"subnational_debt_limit_gdp"`
	// SpendingPropensity is the share of resources local governments try to spend.
	SpendingPropensity float64 `yaml:"spending_propensity"`
}

// ExpenditureConfig parameterises central government spending execution.
type ExpenditureConfig struct {
	// BudgetMultiplier scales the budget allocation relative to final revenue.
	BudgetMultiplier float64 `yaml:"budget_multiplier"`
	DevelopmentShare float64 `yaml:"development_share"`
}

// SOEConfig parameterises state-owned enterprise performance and fiscal links.
type SOEConfig struct {
	InitialSOEPerformance    float64 `yaml:"initial_soe_performance"`
	InitialSOEDebtGDP        float64 `yaml:"initial_soe_debt_gdp"`
	SOEGDPSensitivity        float64 `yaml:"soe_gdp_sensitivity"`
	SOEGovernanceSensitivity float64 `yaml:"soe_governance_sensitivity"`
	SOEDebtDrag              float64 `yaml:"soe_debt_drag"`
	SOEDividendPayout        float64 `yaml:"soe_dividend_payout"`
	SOETransferThreshold     float64 `yaml:"soe_transfer_threshold"`
	SOETransferScale         float64 `yaml:"soe_transfer_scale"`
}

// DebtConfig parameterises public debt dynamics.
type DebtConfig struct {
	InitialDebtStock DebtStockConfig `yaml:"initial_debt_stock"`
	// InitialDebtGDPRatio seeds the stock from initial_gdp when no explicit stock is given.
	InitialDebtGDPRatio        float64       `yaml:"initial_debt_gdp_ratio"`
	DomesticShare              float64       `yaml:"domestic_share"`
	AvgInterestRateDomestic    float64       `yaml:"avg_interest_rate_domestic"`
	AvgInterestRateExternal    float64       `yaml:"avg_interest_rate_external"`
	PrincipalRepaymentDomestic float64       `yaml:"principal_repayment_domestic"`
	PrincipalRepaymentExternal float64       `yaml:"principal_repayment_external"`
	DSAThresholds              DSAThresholds `yaml:"dsa_thresholds"`
}

type DebtStockConfig struct {
	Total    float64 `yaml:"total"`
	Domestic float64 `yaml:"domestic"`
	External float64 `yaml:"external"`
}

type DSAThresholds struct {
	DebtToGDP        float64 `yaml:"debt_to_gdp"`
	ServiceToRevenue float64 `yaml:"service_to_revenue"`
}

// CoordinationConfig parameterises the fiscal-monetary coordination score.
type CoordinationConfig struct {
	BaseCoordinationScore      float64 `yaml:"base_coordination_score"`
	ConflictThresholdInflation float64 `yaml:"conflict_threshold_inflation"`
	ConflictThresholdDeficit   float64 `yaml:"conflict_threshold_deficit"`
	ConflictImpact             float64 `yaml:"conflict_impact"`
	InstitutionalImpact        float64 `yaml:"institutional_impact"`
}

// DefaultConfig returns a configuration with every optional key populated.
// Required simulation keys (start_year, end_year, initial_gdp) stay zero.
func DefaultConfig() Config {
	return Config{
		Version: CurrentVersion,
		Simulation: SimulationConfig{
			InitialGDPGrowth:     0.06,
			BaseRealGDPGrowth:    0.06,
			InitialInflation:     0.07,
			InflationPersistence: 0.7,
			GrowthVolatility:     0.05,
			DuplicateYearPolicy:  DuplicateReject,
		},
		Governance: GovernanceConfig{
			InitialPFMLevel:               0.4,
			InitialNBRLevel:               0.5,
			InitialCBLevel:                0.6,
			InitialACLevel:                0.3,
			InitialAccountabilityScore:    0.4,
			PFMImprovementRate:            0.015,
			NBRImprovementRate:            0.01,
			CBImprovementRate:             0.005,
			ACImprovementRate:             0.008,
			AccountabilityImprovementRate: 0.012,
			MaxLevel:                      0.95,
			Weights: GovernanceWeights{
				PFM:            0.25,
				NBR:            0.20,
				CB:             0.15,
				AntiCorruption: 0.20,
				Accountability: 0.20,
			},
		},
		Supervision: SupervisionConfig{
			InitialEffectiveness:     0.6,
			CBCapacityWeight:         0.5,
			FinancialStabilityWeight: 0.3,
			RegulatoryReformImpact:   0.01,
			Smoothing:                0.9,
			NPLStressLevel:           0.25,
		},
		Financial: FinancialConfig{
			InitialNPLRatio:           0.11,
			InitialCAR:                0.12,
			RequiredCAR:               0.10,
			NPLGDPSensitivity:         -0.5,
			NPLSupervisionSensitivity: -0.2,
			TrendGrowth:               0.04,
			BaselineSupervision:       0.6,
		},
		Monetary: MonetaryConfig{
			TargetInflationBand:   []float64{0.04, 0.06},
			InitialPolicyRate:     0.06,
			InflationGapWeight:    1.5,
			PolicyTransmissionLag: 0.1,
			NeutralRate:           0.06,
		},
		External: ExternalConfig{
			InitialExportGDP:            0.15,
			InitialImportGDP:            0.22,
			InitialRemittanceGDP:        0.05,
			InitialFDIGDP:               0.01,
			InitialReservesMonthsImport: 5.0,
			ExportGlobalGrowthSens:      1.5,
			ImportDomesticGrowthSens:    1.2,
			RemittanceGlobalGrowthSens:  0.8,
			FDIGovernanceSens:           0.05,
			GlobalFactorMin:             0.98,
			GlobalFactorMax:             1.05,
		},
		DevFinance: DevFinanceConfig{
			InitialGrantAidGDP:       0.008,
			InitialDFINetLendingGDP:  0.015,
			GrantGlobalFactorSens:    0.5,
			DFILendingGovernanceSens: 0.3,
			AbsorptionCapacitySens:   0.4,
			AidFactorMin:             0.90,
			AidFactorMax:             1.10,
		},
		Revenue: RevenueConfig{
			TaxStructure: TaxStructure{
				VATRate:          0.15,
				AvgIncomeTaxRate: 0.10,
				AvgCorpTaxRate:   0.25,
				AvgTradeTax:      0.05,
			},
			AdminCapacity:      AdminCapacity{InitialEfficiency: 0.7},
			ComplianceParams:   ComplianceParams{InitialCompliance: 0.6, MaxCompliance: 0.95},
			InformalityMetrics: InformalityMetrics{InitialShare: 0.3},
			TradeBaseGDPShare:  0.2,
		},
		Federalism: FederalismConfig{
			TransferRatioCentralRevenue:      0.10,
			InitialSubnationalRevenueGDP:     0.005,
			SubnationalRevenueCapacityGrowth: 0.01,
			SubnationalSpendingEfficiency:    0.8,
			SubnationalDebtLimitGDP:          0.02,
			SpendingPropensity:               0.95,
		},
		Expenditure: ExpenditureConfig{
			BudgetMultiplier: 1.0,
			DevelopmentShare: 0.6,
		},
		SOE: SOEConfig{
			InitialSOEPerformance:    0.4,
			InitialSOEDebtGDP:        0.10,
			SOEGDPSensitivity:        0.3,
			SOEGovernanceSensitivity: 0.2,
			SOEDebtDrag:              -0.1,
			SOEDividendPayout:        0.2,
			SOETransferThreshold:     0.3,
			SOETransferScale:         0.01,
		},
		Debt: DebtConfig{
			DomesticShare:              0.5,
			AvgInterestRateDomestic:    0.08,
			AvgInterestRateExternal:    0.03,
			PrincipalRepaymentDomestic: 0.05,
			PrincipalRepaymentExternal: 0.03,
			DSAThresholds: DSAThresholds{
				DebtToGDP:        0.70,
				ServiceToRevenue: 0.35,
			},
		},
		Coordination: CoordinationConfig{
			BaseCoordinationScore:      0.6,
			ConflictThresholdInflation: 0.08,
			ConflictThresholdDeficit:   0.05,
			ConflictImpact:             -0.1,
			InstitutionalImpact:        0.05,
		},
		Output: OutputConfig{
			Artifacts: ArtifactConfig{
				Retry: RetryConfig{Backoff: RetryBackoffLinear, Initial: "1s", Max: "30s", MaxRetries: 2},
			},
		},
		Publish: PublishConfig{Subject: "fiscalsim.years"},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}
