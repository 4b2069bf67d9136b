package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envFiles are tried in order before the scenario file is read.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first readable .env file. Variables already present in
// the process environment are never overwritten.
func loadEnvFile() (string, error) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// RuntimeEnv holds process-level overrides applied on top of the scenario file.
type RuntimeEnv struct {
	LogLevel   string `env:"FISCALSIM_LOG_LEVEL"`
	LogFormat  string `env:"FISCALSIM_LOG_FORMAT"`
	SQLitePath string `env:"FISCALSIM_SQLITE_PATH"`
	NATSURL    string `env:"FISCALSIM_NATS_URL"`
	Seed       uint64 `env:"FISCALSIM_SEED"`
	OutputDir  string `env:"FISCALSIM_OUTPUT_DIR"`
}

// ParseRuntimeEnv reads FISCALSIM_* variables from the environment.
func ParseRuntimeEnv() (RuntimeEnv, error) {
	var re RuntimeEnv
	if err := env.Parse(&re); err != nil {
		return RuntimeEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return re, nil
}

// Apply overlays the non-empty overrides onto cfg.
func (re RuntimeEnv) Apply(cfg *Config) {
	if re.LogLevel != "" {
		cfg.Logging.Level = NormalizeLogLevel(re.LogLevel)
	}
	if re.LogFormat != "" {
		cfg.Logging.Format = NormalizeLogFormat(re.LogFormat)
	}
	if re.SQLitePath != "" {
		cfg.Storage.SQLitePath = re.SQLitePath
	}
	if re.NATSURL != "" {
		cfg.Publish.NATSURL = re.NATSURL
	}
	if re.Seed != 0 {
		cfg.Simulation.Seed = re.Seed
	}
	if re.OutputDir != "" {
		cfg.Output.Directory = re.OutputDir
	}
}
