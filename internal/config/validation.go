package config

import (
	"fmt"
	"math"
	"time"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
)

// ValidateConfig checks the complete configuration and returns the first
// problem found as a fatal config error naming the offending key.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	checks := []func() error{
		cv.validateSimulation,
		cv.validateOverrides,
		cv.validateSectors,
		cv.validateOutput,
		cv.validateDaemon,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func fieldError(field, msg string) error {
	return ferrors.ConfigError(fmt.Sprintf("%s: %s", field, msg)).WithContext("field", field).Build()
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (cv *configurationValidator) validateSimulation() error {
	s := cv.config.Simulation
	if s.StartYear <= 0 {
		return fieldError("simulation.start_year", "is required")
	}
	if s.EndYear <= 0 {
		return fieldError("simulation.end_year", "is required")
	}
	if s.EndYear < s.StartYear {
		return fieldError("simulation.end_year", fmt.Sprintf("%d is before start_year %d", s.EndYear, s.StartYear))
	}
	if !finite(s.InitialGDP) || s.InitialGDP <= 0 {
		return fieldError("simulation.initial_gdp", "must be greater than zero")
	}
	if !finite(s.InitialGDPGrowth, s.BaseRealGDPGrowth, s.InitialInflation) {
		return fieldError("simulation", "growth and inflation parameters must be finite")
	}
	if s.InflationPersistence < 0 || s.InflationPersistence > 1 {
		return fieldError("simulation.inflation_persistence", "must be within [0, 1]")
	}
	if s.GrowthVolatility < 0 {
		return fieldError("simulation.growth_volatility", "must not be negative")
	}
	return nil
}

func (cv *configurationValidator) validateOverrides() error {
	s := cv.config.Simulation
	seen := make(map[int]struct{}, len(s.Overrides))
	for _, o := range s.Overrides {
		if o.Year < s.StartYear || o.Year > s.EndYear {
			return fieldError("simulation.overrides", fmt.Sprintf("year %d outside horizon %d-%d", o.Year, s.StartYear, s.EndYear))
		}
		if _, dup := seen[o.Year]; dup {
			return fieldError("simulation.overrides", fmt.Sprintf("year %d listed twice", o.Year))
		}
		seen[o.Year] = struct{}{}
		if o.GDP != nil && (!finite(*o.GDP) || *o.GDP < 0) {
			return fieldError("simulation.overrides.gdp", fmt.Sprintf("year %d: must be a non-negative number", o.Year))
		}
	}
	return nil
}

func (cv *configurationValidator) validateSectors() error {
	c := cv.config

	w := c.Governance.Weights
	if w.PFM < 0 || w.NBR < 0 || w.CB < 0 || w.AntiCorruption < 0 || w.Accountability < 0 {
		return fieldError("governance_model.weights", "must not be negative")
	}
	if w.PFM+w.NBR+w.CB+w.AntiCorruption+w.Accountability <= 0 {
		return fieldError("governance_model.weights", "must sum to a positive value")
	}
	if c.Governance.MaxLevel <= 0 || c.Governance.MaxLevel > 1 {
		return fieldError("governance_model.max_level", "must be within (0, 1]")
	}

	if c.Supervision.Smoothing < 0 || c.Supervision.Smoothing > 1 {
		return fieldError("supervision_model.smoothing", "must be within [0, 1]")
	}
	if c.Supervision.NPLStressLevel <= 0 {
		return fieldError("supervision_model.npl_stress_level", "must be greater than zero")
	}

	if len(c.Monetary.TargetInflationBand) != 2 {
		return fieldError("monetary_policy.target_inflation_band", "must have exactly two values")
	}
	if c.Monetary.TargetInflationBand[0] > c.Monetary.TargetInflationBand[1] {
		return fieldError("monetary_policy.target_inflation_band", "lower bound exceeds upper bound")
	}

	if c.External.GlobalFactorMin > c.External.GlobalFactorMax {
		return fieldError("external_sector.global_factor_min", "exceeds global_factor_max")
	}
	if c.DevFinance.AidFactorMin > c.DevFinance.AidFactorMax {
		return fieldError("development_finance.aid_factor_min", "exceeds aid_factor_max")
	}

	if s := c.Revenue.InformalityMetrics.InitialShare; s < 0 || s > 1 {
		return fieldError("revenue_model.informality_metrics.initial_share", "must be within [0, 1]")
	}
	if r := c.Federalism.TransferRatioCentralRevenue; r < 0 || r > 1 {
		return fieldError("fiscal_federalism.transfer_ratio_central_revenue", "must be within [0, 1]")
	}
	if s := c.Expenditure.DevelopmentShare; s < 0 || s > 1 {
		return fieldError("expenditure_model.development_share", "must be within [0, 1]")
	}
	if c.Expenditure.BudgetMultiplier < 0 {
		return fieldError("expenditure_model.budget_multiplier", "must not be negative")
	}

	d := c.Debt
	if d.InitialDebtStock.Total < 0 || d.InitialDebtStock.Domestic < 0 || d.InitialDebtStock.External < 0 {
		return fieldError("debt_model.initial_debt_stock", "must not be negative")
	}
	if d.DomesticShare < 0 || d.DomesticShare > 1 {
		return fieldError("debt_model.domestic_share", "must be within [0, 1]")
	}
	if d.DSAThresholds.DebtToGDP <= 0 {
		return fieldError("debt_model.dsa_thresholds.debt_to_gdp", "must be greater than zero")
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	a := cv.config.Output.Artifacts
	if a.Driver == ArtifactS3 && a.Bucket == "" {
		return fieldError("output.artifacts.bucket", "is required for the s3 driver")
	}
	for field, raw := range map[string]string{"output.artifacts.retry.initial": a.Retry.Initial, "output.artifacts.retry.max": a.Retry.Max} {
		if raw == "" {
			continue
		}
		if v, err := time.ParseDuration(raw); err != nil || v < 0 {
			return fieldError(field, fmt.Sprintf("invalid duration %q", raw))
		}
	}
	if a.Retry.MaxRetries < 0 {
		return fieldError("output.artifacts.retry.max_retries", "cannot be negative")
	}
	return nil
}

func (cv *configurationValidator) validateDaemon() error {
	d := cv.config.Daemon
	for field, raw := range map[string]string{"daemon.every": d.Every, "daemon.debounce": d.Debounce} {
		if raw == "" {
			continue
		}
		if v, err := time.ParseDuration(raw); err != nil || v < 0 {
			return fieldError(field, fmt.Sprintf("invalid duration %q", raw))
		}
	}
	return nil
}
