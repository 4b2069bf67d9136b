package config

import (
	"path/filepath"
	"time"
)

// DefaultApplier applies defaults for a specific configuration domain. Sector
// sub-documents are pre-populated by DefaultConfig; appliers cover fields where
// the zero value means "unset".
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SimulationDefaultApplier fills the duplicate-year policy.
type SimulationDefaultApplier struct{}

func (SimulationDefaultApplier) Domain() string { return "simulation" }

func (SimulationDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Simulation.DuplicateYearPolicy == "" {
		cfg.Simulation.DuplicateYearPolicy = DuplicateReject
	}
	return nil
}

// OutputDefaultApplier handles report output defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "./results"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []ReportFormat{FormatCSV}
	}
	a := &cfg.Output.Artifacts
	if a.Driver == "" {
		a.Driver = ArtifactNone
	}
	if a.Driver == ArtifactFS && a.Root == "" {
		a.Root = filepath.Join(cfg.Output.Directory, "artifacts")
	}
	return nil
}

// DaemonDefaultApplier handles watch/serve defaults.
type DaemonDefaultApplier struct{}

func (DaemonDefaultApplier) Domain() string { return "daemon" }

func (DaemonDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Daemon.Debounce == "" {
		cfg.Daemon.Debounce = "2s"
	}
	if cfg.Daemon.Addr == "" {
		cfg.Daemon.Addr = ":8090"
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Publish.Subject == "" {
		cfg.Publish.Subject = "fiscalsim.years"
	}
	return nil
}

// defaultAppliers lists the appliers in the order they run.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		SimulationDefaultApplier{},
		OutputDefaultApplier{},
		DaemonDefaultApplier{},
		LoggingDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// DebounceDuration parses daemon.debounce, falling back to two seconds.
func (d DaemonConfig) DebounceDuration() time.Duration {
	if v, err := time.ParseDuration(d.Debounce); err == nil && v > 0 {
		return v
	}
	return 2 * time.Second
}

// EveryDuration parses daemon.every; zero disables scheduled reruns.
func (d DaemonConfig) EveryDuration() time.Duration {
	if v, err := time.ParseDuration(d.Every); err == nil && v > 0 {
		return v
	}
	return 0
}
