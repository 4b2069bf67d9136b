package config

import (
	"fmt"
	"slices"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields and sorts overrides by year.
// It mutates c in place.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	normalizeSimulation(&c.Simulation, res)
	normalizeOutput(&c.Output, res)
	normalizeLogging(&c.Logging, res)
	return res
}

func normalizeSimulation(s *SimulationConfig, res *NormalizationResult) {
	if raw := string(s.DuplicateYearPolicy); raw != "" {
		if p, ok := duplicatePolicies.lookup(raw); ok {
			if p != s.DuplicateYearPolicy {
				res.Warnings = append(res.Warnings, warnChanged("simulation.duplicate_year_policy", raw, string(p)))
			}
			s.DuplicateYearPolicy = p
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("simulation.duplicate_year_policy", raw, string(DuplicateReject)))
			s.DuplicateYearPolicy = DuplicateReject
		}
	}
	slices.SortStableFunc(s.Overrides, func(a, b ScenarioOverride) int { return a.Year - b.Year })
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	if len(o.Formats) > 0 {
		seen := make(map[ReportFormat]struct{}, len(o.Formats))
		out := make([]ReportFormat, 0, len(o.Formats))
		for _, f := range o.Formats {
			canon, ok := ParseReportFormat(string(f))
			if !ok {
				res.Warnings = append(res.Warnings, fmt.Sprintf("dropping unknown output format %q", f))
				continue
			}
			if _, dup := seen[canon]; dup {
				continue
			}
			seen[canon] = struct{}{}
			out = append(out, canon)
		}
		o.Formats = out
	}
	if raw := strings.TrimSpace(string(o.Artifacts.Driver)); raw != "" {
		if d, ok := artifactDrivers.lookup(raw); ok {
			o.Artifacts.Driver = d
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("output.artifacts.driver", raw, string(ArtifactNone)))
			o.Artifacts.Driver = ArtifactNone
		}
	}
	if raw := strings.TrimSpace(string(o.Artifacts.Retry.Backoff)); raw != "" {
		if m, ok := retryBackoffModes.lookup(raw); ok {
			o.Artifacts.Retry.Backoff = m
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("output.artifacts.retry.backoff", raw, string(RetryBackoffLinear)))
			o.Artifacts.Retry.Backoff = RetryBackoffLinear
		}
	}
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if raw := string(l.Level); raw != "" {
		if _, ok := logLevels.lookup(raw); !ok {
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", raw, string(LogLevelInfo)))
		}
		l.Level = NormalizeLogLevel(raw)
	}
	if raw := string(l.Format); raw != "" {
		if _, ok := logFormats.lookup(raw); !ok {
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", raw, string(LogFormatText)))
		}
		l.Format = NormalizeLogFormat(raw)
	}
}

func warnChanged(field, from, to string) string {
	return fmt.Sprintf("normalized %s from '%s' to '%s'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s' defaulting to %s", field, value, def)
}
