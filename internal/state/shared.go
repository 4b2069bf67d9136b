package state

import (
	"fmt"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
)

// Initial seeds the state before the first simulated year.
type Initial struct {
	GDP           float64
	GDPGrowth     float64
	RealGDPGrowth float64
	Inflation     float64
	NPLRatio      float64
	DebtStock     DebtStock
}

// SeededFields lists the fields New populates, available to lagged readers in
// the first year.
func SeededFields() []Field {
	return []Field{
		FieldGDP, FieldGDPGrowth, FieldRealGDPGrowth,
		FieldInflation, FieldNPLRatio, FieldDebtStock,
		FieldDeficit, FieldPrimaryDeficit,
	}
}

// Shared is the single mutable record of a run.
type Shared struct {
	year int

	Economic     Economic
	Governance   Governance
	Supervision  Supervision
	Financial    Financial
	Monetary     Monetary
	External     External
	DevFinance   DevFinance
	Revenue      Revenue
	Federalism   Federalism
	Expenditure  Expenditure
	SOE          SOE
	Debt         Debt
	Coordination Coordination
	Fiscal       Fiscal

	Inflation                float64
	Deficit                  float64
	PrimaryDeficit           float64
	DebtStock                DebtStock
	SOEDebtStock             float64
	FXReserves               float64
	NPLRatio                 float64
	GovernanceIndex          float64
	SupervisionEffectiveness float64
	PolicyRate               float64
	FinalRevenue             float64

	writtenBy map[Field]Sector
}

// New creates the shared state for a run.
func New(in Initial) *Shared {
	return &Shared{
		Economic: Economic{
			Valid:         true,
			GDP:           in.GDP,
			GDPGrowth:     in.GDPGrowth,
			RealGDPGrowth: in.RealGDPGrowth,
			InflationRate: in.Inflation,
		},
		Inflation: in.Inflation,
		NPLRatio:  in.NPLRatio,
		DebtStock: in.DebtStock,
		writtenBy: make(map[Field]Sector),
	}
}

// BeginYear starts a new simulated year and forgets which steps wrote which
// promoted fields.
func (s *Shared) BeginYear(year int) {
	s.year = year
	clear(s.writtenBy)
}

// Year returns the year currently being simulated (zero before the first).
func (s *Shared) Year() int { return s.year }

// Promote records that step writes promoted field f and applies set. Writing a
// field already written this year by another step fails, unless step is the
// declared override for f.
func (s *Shared) Promote(step Sector, f Field, set func()) error {
	if prev, ok := s.writtenBy[f]; ok && prev != step && Overrides[f] != step {
		return ferrors.InternalError(fmt.Sprintf("promoted field %s already written by %s this year", f, prev)).
			WithContext("field", string(f)).
			WithContext("step", string(step)).
			WithContext("year", s.year).
			Build()
	}
	set()
	s.writtenBy[f] = step
	return nil
}

// writer reports which step wrote promoted field f this year, if any.
func (s *Shared) writer(f Field) (Sector, bool) {
	w, ok := s.writtenBy[f]
	return w, ok
}

// View returns a read-only handle on s.
func (s *Shared) View() View { return readOnly{s: s} }
