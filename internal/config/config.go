package config

import "time"

// CurrentVersion is the only configuration schema version accepted by Load.
const CurrentVersion = "1"

// Config is the complete scenario document: simulation-wide parameters, one
// sub-document per sector model, and the runtime surfaces around a run.
type Config struct {
	Version    string           `yaml:"version"`
	Simulation SimulationConfig `yaml:"simulation"`

	Governance   GovernanceConfig   `yaml:"governance_model"`
	Supervision  SupervisionConfig  `yaml:"supervision_model"`
	Financial    FinancialConfig    `yaml:"financial_sector"`
	Monetary     MonetaryConfig     `yaml:"monetary_policy"`
	External     ExternalConfig     `yaml:"external_sector"`
	DevFinance   DevFinanceConfig   `yaml:"development_finance"`
	Revenue      RevenueConfig      `yaml:"revenue_model"`
	Federalism   FederalismConfig   `yaml:"fiscal_federalism"`
	Expenditure  ExpenditureConfig  `yaml:"expenditure_model"`
	SOE          SOEConfig          `yaml:"soe_model"`
	Debt         DebtConfig         `yaml:"debt_model"`
	Coordination CoordinationConfig `yaml:"policy_coordination"`

	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Publish PublishConfig `yaml:"publish"`
	Daemon  DaemonConfig  `yaml:"daemon"`
	Logging LoggingConfig `yaml:"logging"`
}

// SimulationConfig holds the horizon and the macro starting point.
type SimulationConfig struct {
	StartYear            int     `yaml:"start_year"`
	EndYear              int     `yaml:"end_year"`
	InitialGDP           float64 `yaml:"initial_gdp"`
	InitialGDPGrowth     float64 `yaml:"initial_gdp_growth"`
	BaseRealGDPGrowth    float64 `yaml:"base_real_gdp_growth"`
	InitialInflation     float64 `yaml:"initial_inflation"`
	InflationPersistence float64 `yaml:"inflation_persistence"`
	GrowthVolatility     float64 `yaml:"growth_volatility"`
	// Seed drives every stochastic term. Zero means "pick one and record it".
	Seed                uint64             `yaml:"seed"`
	DuplicateYearPolicy DuplicatePolicy    `yaml:"duplicate_year_policy"`
	Overrides           []ScenarioOverride `yaml:"overrides,omitempty"`
}

// ScenarioOverride forces economic values for one year after the economic
// update has run. Nil fields are left untouched. A forced GDP carries into
// later years, which grow from it; a GDP of zero therefore stays zero.
type ScenarioOverride struct {
	Year          int      `yaml:"year"`
	GDP           *float64 `yaml:"gdp,omitempty"`
	RealGDPGrowth *float64 `yaml:"real_gdp_growth,omitempty"`
	Inflation     *float64 `yaml:"inflation,omitempty"`
}

// Years returns the number of simulated years, start and end inclusive.
func (s SimulationConfig) Years() int {
	if s.EndYear < s.StartYear {
		return 0
	}
	return s.EndYear - s.StartYear + 1
}

// OverrideFor returns the override registered for year, if any.
func (s SimulationConfig) OverrideFor(year int) (ScenarioOverride, bool) {
	for _, o := range s.Overrides {
		if o.Year == year {
			return o, true
		}
	}
	return ScenarioOverride{}, false
}

// OutputConfig controls report rendering after a run.
type OutputConfig struct {
	Directory string         `yaml:"directory"`
	Formats   []ReportFormat `yaml:"formats"`
	Artifacts ArtifactConfig `yaml:"artifacts"`
}

// ArtifactConfig selects where rendered reports are uploaded.
type ArtifactConfig struct {
	Driver   ArtifactDriver `yaml:"driver"`
	Root     string         `yaml:"root,omitempty"`
	Bucket   string         `yaml:"bucket,omitempty"`
	Region   string         `yaml:"region,omitempty"`
	Endpoint string         `yaml:"endpoint,omitempty"`
	Prefix   string         `yaml:"prefix,omitempty"`
	Retry    RetryConfig    `yaml:"retry"`
}

// RetryConfig controls retries of failed artifact uploads. Durations use Go
// duration syntax.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff"`
	Initial    string           `yaml:"initial"`
	Max        string           `yaml:"max"`
	MaxRetries int              `yaml:"max_retries"`
}

// Delays parses Initial and Max. Unparseable values come back as zero.
func (r RetryConfig) Delays() (initial, maxDelay time.Duration) {
	initial, _ = time.ParseDuration(r.Initial)
	maxDelay, _ = time.ParseDuration(r.Max)
	return initial, maxDelay
}

// StorageConfig controls the run store. An empty path disables persistence.
type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// PublishConfig controls NATS publication of completed years.
type PublishConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// DaemonConfig controls the long-running watch and serve commands.
type DaemonConfig struct {
	Every    string `yaml:"every,omitempty"`
	Debounce string `yaml:"debounce,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}
