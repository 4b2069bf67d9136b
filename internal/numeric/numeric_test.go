package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatRejectsNonFinite(t *testing.T) {
	assert.False(t, Float(math.NaN()).Valid)
	assert.False(t, Float(math.Inf(1)).Valid)
	assert.False(t, Float(math.Inf(-1)).Valid)
	assert.Equal(t, Value{Float: 1.5, Valid: true}, Float(1.5))
}

func TestRatio(t *testing.T) {
	assert.False(t, Ratio(10, 0).Valid)
	assert.False(t, Ratio(10, -5).Valid)
	assert.InDelta(t, 0.25, Ratio(1, 4).Float, 1e-12)
}

func TestClampAndFloor(t *testing.T) {
	assert.Equal(t, 0.2, Clamp(0.1, 0.2, 0.95))
	assert.Equal(t, 0.95, Clamp(1.3, 0.2, 0.95))
	assert.Equal(t, 0.5, Clamp(0.5, 0.2, 0.95))
	assert.Equal(t, 0.2, Clamp(math.NaN(), 0.2, 0.95))
	assert.Equal(t, 0.0, NonNegative(-3))
	assert.Equal(t, 3.0, NonNegative(3))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 7.0, SafeDiv(1, 0, 7))
	assert.Equal(t, 2.0, SafeDiv(4, 2, 7))
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{Float(2), Missing(), Bool(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `[2, null, 1]`, string(data))

	var back []Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Value{Float(2), Missing(), Float(1)}, back)
	assert.Equal(t, 9.0, Missing().Or(9))
}
