package engine

import "github.com/deluair/BD-publicfinance-simulation/internal/state"

func aggregatesStep() Step {
	return Step{
		Name: state.StepAggregates,
		Consumes: []state.Dependency{
			state.Current(state.FieldRevFinal),
			state.Current(state.FieldFedTransfers),
			state.Current(state.FieldSOEDividends),
			state.Current(state.FieldExpTotal),
			state.Current(state.FieldSOETransfers),
		},
		Publishes: []state.Field{
			state.FieldFiscalCentralRevenue, state.FieldFiscalTotalRevenue,
			state.FieldFiscalCentralSpending, state.FieldFiscalTotalExpend,
			state.FieldDeficit,
		},
		Run: func(_ int, s *state.Shared) error {
			return s.MergeAggregates(aggregates(s.View()))
		},
	}
}

// aggregates consolidates central government and SOE flows. Sectors that
// have not initialised contribute zero.
func aggregates(v state.View) state.Fiscal {
	central := v.Revenue().FinalRevenue - v.Federalism().Transfers
	soe := v.SOE()
	totalRevenue := central + soe.Dividends
	spending := v.Expenditure().Total
	totalExpenditure := spending + soe.TransfersNeeded
	return state.Fiscal{
		Valid:                   true,
		RevenueForCentralGov:    central,
		TotalRevenue:            totalRevenue,
		RealizedCentralSpending: spending,
		TotalExpenditure:        totalExpenditure,
		Deficit:                 totalExpenditure - totalRevenue,
	}
}

func primaryDeficitStep() Step {
	return Step{
		Name: state.StepPrimaryDeficit,
		Consumes: []state.Dependency{
			state.Current(state.FieldDeficit),
			state.Current(state.FieldDebtService),
		},
		Publishes: []state.Field{state.FieldFiscalInterest, state.FieldPrimaryDeficit},
		Run: func(_ int, s *state.Shared) error {
			interest := s.View().Debt().Service.TotalInterest
			return s.MergePrimaryDeficit(interest, s.View().Deficit()-interest)
		},
	}
}
