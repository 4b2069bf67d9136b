package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
)

// Load reads a scenario file, expands ${VAR} references, overlays it on
// DefaultConfig, then normalizes, applies defaults, applies FISCALSIM_*
// overrides and validates. All failures are fatal config errors.
func Load(configPath string) (*Config, error) {
	if path, err := loadEnvFile(); err != nil {
		slog.Warn("Could not load env file", logfields.Path(path), logfields.Error(err))
	} else if path != "" {
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	re, err := ParseRuntimeEnv()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid runtime environment").Fatal().Build()
	}
	re.Apply(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a scenario document without touching the process environment
// beyond ${VAR} expansion. It normalizes and applies defaults but does not
// validate, so callers can adjust the result first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	cfg.Version = ""
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %q)", cfg.Version, CurrentVersion)).Build()
	}

	res := NormalizeConfig(&cfg)
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", slog.String("warning", w))
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to apply defaults").Fatal().Build()
	}
	return &cfg, nil
}

// Init writes an example scenario file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := DefaultConfig()
	example.Simulation.StartYear = 2025
	example.Simulation.EndYear = 2034
	example.Simulation.InitialGDP = 50000
	example.Simulation.Seed = 42
	example.Debt.InitialDebtGDPRatio = 0.36
	example.Output = OutputConfig{
		Directory: "./results",
		Formats:   []ReportFormat{FormatCSV, FormatMarkdown, FormatHTML},
		Artifacts: ArtifactConfig{Driver: ArtifactNone, Retry: example.Output.Artifacts.Retry},
	}
	example.Storage.SQLitePath = "./fiscalsim.db"
	example.Daemon = DaemonConfig{Every: "24h", Debounce: "2s", Addr: ":8090"}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
