package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyYear       = "year"
	KeySector     = "sector"
	KeyStep       = "step"
	KeyField      = "field"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeySeed       = "seed"
	KeyYears      = "years"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyDriver     = "driver"
	KeyKey        = "key"
	KeySubject    = "subject"
	KeyJobID      = "job_id"
	KeyTrigger    = "trigger"
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyRequestID  = "request_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Year(y int) slog.Attr            { return slog.Int(KeyYear, y) }
func Sector(name string) slog.Attr    { return slog.String(KeySector, name) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func Field(name string) slog.Attr     { return slog.String(KeyField, name) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Seed(s uint64) slog.Attr         { return slog.Uint64(KeySeed, s) }
func Years(n int) slog.Attr           { return slog.Int(KeyYears, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Driver(d string) slog.Attr       { return slog.String(KeyDriver, d) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func JobID(id string) slog.Attr       { return slog.String(KeyJobID, id) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
