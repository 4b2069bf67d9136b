package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r-1", RunID("r-1")},
		{"Sector", KeySector, "debt", Sector("debt")},
		{"Step", KeyStep, "aggregates", Step("aggregates")},
		{"Field", KeyField, "inflation", Field("inflation")},
		{"Status", KeyStatus, "completed", Status("completed")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Format", KeyFormat, "csv", Format("csv")},
		{"Driver", KeyDriver, "s3", Driver("s3")},
		{"Subject", KeySubject, "fiscalsim.years", Subject("fiscalsim.years")},
		{"Trigger", KeyTrigger, "schedule", Trigger("schedule")},
		{"Addr", KeyAddr, ":8090", Addr(":8090")},
		{"RequestID", KeyRequestID, "rid", RequestID("rid")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Year(2027); v.Key != KeyYear || v.Value.Int64() != 2027 {
		t.Fatalf("Year mismatch: %v", v)
	}
	if v := Years(6); v.Key != KeyYears {
		t.Fatalf("Years key mismatch: %s", v.Key)
	}
	if v := Seed(42); v.Key != KeySeed || v.Value.Uint64() != 42 {
		t.Fatalf("Seed mismatch: %v", v)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errors.New("err-test"))
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}
