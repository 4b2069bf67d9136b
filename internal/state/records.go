package state

import "github.com/deluair/BD-publicfinance-simulation/internal/numeric"

// Economic holds the macro aggregates written by the economic update.
type Economic struct {
	Valid         bool
	GDP           float64
	GDPGrowth     float64
	RealGDPGrowth float64
	InflationRate float64
}

// Governance holds institutional quality levels in [0, 1] and the composite
// index on a 0-100 scale.
type Governance struct {
	Valid          bool
	Index          float64
	PFM            float64
	NBR            float64
	CBCapacity     float64
	AntiCorruption float64
	Accountability float64
}

type Supervision struct {
	Valid         bool
	Effectiveness float64
}

type Financial struct {
	Valid          bool
	NPLRatio       float64
	CAR            float64
	StabilityIndex float64
}

type Monetary struct {
	Valid              bool
	PolicyRate         float64
	ProjectedInflation float64
}

// External holds balance-of-payments flows and reserves. CABGDP is missing
// when GDP is not positive.
type External struct {
	Valid          bool
	Exports        float64
	Imports        float64
	Remittances    float64
	FDI            float64
	CAB            float64
	OverallBoP     float64
	FXReserves     float64
	ReservesMonths float64
	CABGDP         numeric.Value
}

type DevFinance struct {
	Valid         bool
	Grants        float64
	DFINetLending float64
}

// Revenue holds the collection pipeline from potential to final revenue.
type Revenue struct {
	Valid           bool
	Potential       float64
	FinalRevenue    float64
	AdminEfficiency float64
	ComplianceRate  float64
}

type Federalism struct {
	Valid      bool
	Transfers  float64
	OwnRevenue float64
	Spending   float64
	Debt       float64
	Borrowing  float64
}

type Expenditure struct {
	Valid          bool
	Budget         float64
	Development    float64
	NonDevelopment float64
	Total          float64
	Efficiency     float64
}

type SOE struct {
	Valid           bool
	Dividends       float64
	TransfersNeeded float64
	Debt            float64
	Performance     float64
}

// DebtStock splits public debt by creditor residence.
type DebtStock struct {
	Domestic float64
	External float64
	Total    float64
}

// DebtService is the interest and principal due on last year's stock.
type DebtService struct {
	InterestDomestic  float64
	InterestExternal  float64
	TotalInterest     float64
	PrincipalDomestic float64
	PrincipalExternal float64
	TotalPrincipal    float64
	TotalService      float64
}

// DSA is the debt sustainability assessment. Ratios are missing when their
// denominator is not positive.
type DSA struct {
	DebtToGDP        numeric.Value
	ServiceToRevenue numeric.Value
	Breached         bool
	ServiceBreached  bool
}

type Debt struct {
	Valid        bool
	Stock        DebtStock
	NewBorrowing float64
	Repayment    float64
	Service      DebtService
	DSA          DSA
}

type Coordination struct {
	Valid    bool
	Score    float64
	Conflict bool
}

// Fiscal holds the cross-sector aggregates computed by the orchestrator.
type Fiscal struct {
	Valid                   bool
	RevenueForCentralGov    float64
	TotalRevenue            float64
	RealizedCentralSpending float64
	TotalExpenditure        float64
	Deficit                 float64
	InterestPayments        float64
	PrimaryDeficit          float64
}
