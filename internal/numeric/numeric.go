// Package numeric holds the small set of float helpers shared by sector
// models, the orchestrator and the ledger: clamping, flooring, guarded
// division and a missing-aware Value.
package numeric

import (
	"encoding/json"
	"math"
)

// Value is a float that may be missing. The zero Value is missing.
type Value struct {
	Float float64
	Valid bool
}

// Float wraps f, mapping NaN and ±Inf to missing.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{Float: f, Valid: true}
}

// Missing returns the missing marker.
func Missing() Value { return Value{} }

// Bool encodes b as 1 or 0.
func Bool(b bool) Value {
	if b {
		return Value{Float: 1, Valid: true}
	}
	return Value{Float: 0, Valid: true}
}

// Ratio returns num/den, or missing when den is not strictly positive.
func Ratio(num, den float64) Value {
	if !(den > 0) {
		return Missing()
	}
	return Float(num / den)
}

// Or returns the wrapped float, or def when v is missing.
func (v Value) Or(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.Float
}

// MarshalJSON renders missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Float(f)
	return nil
}

// Clamp bounds x to [lo, hi]. NaN collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NonNegative floors x at zero. NaN collapses to zero.
func NonNegative(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return x
}

// SafeDiv returns num/den, or def when den is zero or the result is not finite.
func SafeDiv(num, den, def float64) float64 {
	if den == 0 {
		return def
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return def
	}
	return r
}
