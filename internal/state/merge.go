package state

// Merge functions replace one sub-record wholesale and promote its declared
// top-level fields. Invalid records (sector not yet initialised) promote
// nothing, so readers keep last year's or the seeded value.

// MergeEconomic is used by the economic update.
func (s *Shared) MergeEconomic(e Economic) error {
	s.Economic = e
	return s.Promote(StepEconomic, FieldInflation, func() { s.Inflation = e.InflationRate })
}

func (s *Shared) MergeGovernance(g Governance) error {
	s.Governance = g
	if !g.Valid {
		return nil
	}
	return s.Promote(SectorGovernance, FieldGovernanceIndex, func() { s.GovernanceIndex = g.Index })
}

func (s *Shared) MergeSupervision(v Supervision) error {
	s.Supervision = v
	if !v.Valid {
		return nil
	}
	return s.Promote(SectorSupervision, FieldSupervisionEffectiveness, func() { s.SupervisionEffectiveness = v.Effectiveness })
}

func (s *Shared) MergeFinancial(f Financial) error {
	s.Financial = f
	if !f.Valid {
		return nil
	}
	return s.Promote(SectorFinancial, FieldNPLRatio, func() { s.NPLRatio = f.NPLRatio })
}

func (s *Shared) MergeMonetary(m Monetary) error {
	s.Monetary = m
	if !m.Valid {
		return nil
	}
	return s.Promote(SectorMonetary, FieldPolicyRate, func() { s.PolicyRate = m.PolicyRate })
}

func (s *Shared) MergeExternal(e External) error {
	s.External = e
	if !e.Valid {
		return nil
	}
	return s.Promote(SectorExternal, FieldFXReserves, func() { s.FXReserves = e.FXReserves })
}

func (s *Shared) MergeDevFinance(d DevFinance) error {
	s.DevFinance = d
	return nil
}

func (s *Shared) MergeRevenue(r Revenue) error {
	s.Revenue = r
	if !r.Valid {
		return nil
	}
	return s.Promote(SectorRevenue, FieldFinalRevenue, func() { s.FinalRevenue = r.FinalRevenue })
}

func (s *Shared) MergeFederalism(f Federalism) error {
	s.Federalism = f
	return nil
}

func (s *Shared) MergeExpenditure(e Expenditure) error {
	s.Expenditure = e
	return nil
}

func (s *Shared) MergeSOE(o SOE) error {
	s.SOE = o
	if !o.Valid {
		return nil
	}
	return s.Promote(SectorSOE, FieldSOEDebtStock, func() { s.SOEDebtStock = o.Debt })
}

func (s *Shared) MergeDebt(d Debt) error {
	s.Debt = d
	if !d.Valid {
		return nil
	}
	return s.Promote(SectorDebt, FieldDebtStock, func() { s.DebtStock = d.Stock })
}

func (s *Shared) MergeCoordination(c Coordination) error {
	s.Coordination = c
	return nil
}

// MergeAggregates stores the fiscal aggregates and promotes the deficit.
func (s *Shared) MergeAggregates(f Fiscal) error {
	s.Fiscal = f
	return s.Promote(StepAggregates, FieldDeficit, func() { s.Deficit = f.Deficit })
}

// MergePrimaryDeficit completes the fiscal record with interest and the
// primary balance.
func (s *Shared) MergePrimaryDeficit(interest, primary float64) error {
	s.Fiscal.InterestPayments = interest
	s.Fiscal.PrimaryDeficit = primary
	return s.Promote(StepPrimaryDeficit, FieldPrimaryDeficit, func() { s.PrimaryDeficit = primary })
}
