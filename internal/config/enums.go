package config

import "strings"

// enumNormalizer maps case-insensitive raw strings onto canonical enum values.
type enumNormalizer[T ~string] struct {
	values       map[string]T
	defaultValue T
}

func newEnumNormalizer[T ~string](defaultValue T, values ...T) enumNormalizer[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return enumNormalizer[T]{values: m, defaultValue: defaultValue}
}

// lookup returns the canonical value and whether raw was recognised.
func (n enumNormalizer[T]) lookup(raw string) (T, bool) {
	v, ok := n.values[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func (n enumNormalizer[T]) normalize(raw string) T {
	if v, ok := n.lookup(raw); ok {
		return v
	}
	return n.defaultValue
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = newEnumNormalizer(LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)

func NormalizeLogLevel(raw string) LogLevel { return logLevels.normalize(raw) }

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = newEnumNormalizer(LogFormatText, LogFormatJSON, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat { return logFormats.normalize(raw) }

// DuplicatePolicy decides what the ledger does when a year is recorded twice.
type DuplicatePolicy string

const (
	DuplicateReject    DuplicatePolicy = "reject"
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

var duplicatePolicies = newEnumNormalizer(DuplicateReject, DuplicateReject, DuplicateOverwrite)

func NormalizeDuplicatePolicy(raw string) DuplicatePolicy { return duplicatePolicies.normalize(raw) }

// ReportFormat names a rendered output of a completed run.
type ReportFormat string

const (
	FormatCSV      ReportFormat = "csv"
	FormatJSON     ReportFormat = "json"
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
)

var reportFormats = newEnumNormalizer(FormatCSV, FormatCSV, FormatJSON, FormatMarkdown, FormatHTML)

// ParseReportFormat returns the canonical format and whether raw was recognised.
func ParseReportFormat(raw string) (ReportFormat, bool) { return reportFormats.lookup(raw) }

// ArtifactDriver selects the blob store backing report uploads.
type ArtifactDriver string

const (
	ArtifactNone ArtifactDriver = "none"
	ArtifactFS   ArtifactDriver = "fs"
	ArtifactS3   ArtifactDriver = "s3"
)

var artifactDrivers = newEnumNormalizer(ArtifactNone, ArtifactNone, ArtifactFS, ArtifactS3)

// RetryBackoffMode enumerates retry backoff strategies.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffModes = newEnumNormalizer(RetryBackoffLinear, RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential)

func NormalizeRetryBackoffMode(raw string) RetryBackoffMode { return retryBackoffModes.normalize(raw) }

func NormalizeArtifactDriver(raw string) ArtifactDriver { return artifactDrivers.normalize(raw) }
