package state

// View is the read-only handle sector models receive. Every accessor returns
// a copy.
type View interface {
	Year() int

	Economic() Economic
	Governance() Governance
	Supervision() Supervision
	Financial() Financial
	Monetary() Monetary
	External() External
	DevFinance() DevFinance
	Revenue() Revenue
	Federalism() Federalism
	Expenditure() Expenditure
	SOE() SOE
	Debt() Debt
	Coordination() Coordination
	Fiscal() Fiscal

	Inflation() float64
	Deficit() float64
	PrimaryDeficit() float64
	DebtStock() DebtStock
	SOEDebtStock() float64
	FXReserves() float64
	NPLRatio() float64
	GovernanceIndex() float64
	SupervisionEffectiveness() float64
	PolicyRate() float64
	FinalRevenue() float64
}

type readOnly struct{ s *Shared }

func (r readOnly) Year() int { return r.s.year }

func (r readOnly) Economic() Economic         { return r.s.Economic }
func (r readOnly) Governance() Governance     { return r.s.Governance }
func (r readOnly) Supervision() Supervision   { return r.s.Supervision }
func (r readOnly) Financial() Financial       { return r.s.Financial }
func (r readOnly) Monetary() Monetary         { return r.s.Monetary }
func (r readOnly) External() External         { return r.s.External }
func (r readOnly) DevFinance() DevFinance     { return r.s.DevFinance }
func (r readOnly) Revenue() Revenue           { return r.s.Revenue }
func (r readOnly) Federalism() Federalism     { return r.s.Federalism }
func (r readOnly) Expenditure() Expenditure   { return r.s.Expenditure }
func (r readOnly) SOE() SOE                   { return r.s.SOE }
func (r readOnly) Debt() Debt                 { return r.s.Debt }
func (r readOnly) Coordination() Coordination { return r.s.Coordination }
func (r readOnly) Fiscal() Fiscal             { return r.s.Fiscal }

func (r readOnly) Inflation() float64                { return r.s.Inflation }
func (r readOnly) Deficit() float64                  { return r.s.Deficit }
func (r readOnly) PrimaryDeficit() float64           { return r.s.PrimaryDeficit }
func (r readOnly) DebtStock() DebtStock              { return r.s.DebtStock }
func (r readOnly) SOEDebtStock() float64             { return r.s.SOEDebtStock }
func (r readOnly) FXReserves() float64               { return r.s.FXReserves }
func (r readOnly) NPLRatio() float64                 { return r.s.NPLRatio }
func (r readOnly) GovernanceIndex() float64          { return r.s.GovernanceIndex }
func (r readOnly) SupervisionEffectiveness() float64 { return r.s.SupervisionEffectiveness }
func (r readOnly) PolicyRate() float64               { return r.s.PolicyRate }
func (r readOnly) FinalRevenue() float64             { return r.s.FinalRevenue }
