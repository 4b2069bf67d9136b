package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

func entryWithGDP(year int, gdp float64) Entry {
	e := NewEntry(year)
	e.SetFloat(MetricGDP, gdp)
	return e
}

func TestCatalogue(t *testing.T) {
	cat := Catalogue()
	require.Len(t, cat, 47)
	assert.Equal(t, MetricGDP, cat[0])
	assert.Equal(t, MetricPolicyCoordinationScore, cat[len(cat)-1])

	seen := make(map[Metric]bool)
	for _, m := range cat {
		assert.False(t, seen[m], "duplicate metric %s", m)
		seen[m] = true
		assert.True(t, isMetric(m))
	}
	assert.False(t, isMetric("Nope"))

	cat[0] = "mutated"
	assert.Equal(t, MetricGDP, Catalogue()[0])
}

func TestEntryDefaultsToMissing(t *testing.T) {
	e := NewEntry(2025)
	for _, m := range Catalogue() {
		assert.False(t, e.Get(m).Valid, m)
	}

	e.SetFloat(MetricGDP, 10)
	e.Set("Unknown", numeric.Float(3))
	assert.Equal(t, numeric.Float(10), e.Get(MetricGDP))
	assert.False(t, e.Get("Unknown").Valid)

	var zero Entry
	zero.SetFloat(MetricInflation, 0.05)
	assert.InDelta(t, 0.05, zero.Get(MetricInflation).Float, 1e-12)
}

func TestSetFloatMapsNonFiniteToMissing(t *testing.T) {
	e := NewEntry(2025)
	e.SetFloat(MetricGDP, math.Inf(1))
	assert.False(t, e.Get(MetricGDP).Valid)
	e.SetFloat(MetricGDP, math.NaN())
	assert.False(t, e.Get(MetricGDP).Valid)
}

func TestRecordKeepsYearOrder(t *testing.T) {
	l := New(config.DuplicateReject)
	for y := 2025; y <= 2029; y++ {
		require.NoError(t, l.Record(y, entryWithGDP(y, float64(y))))
	}
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, []int{2025, 2026, 2027, 2028, 2029}, l.Years())
	require.NoError(t, l.Validate(2025, 2029))

	e, ok := l.Get(2027)
	require.True(t, ok)
	assert.Equal(t, 2027, e.Year)
	assert.Equal(t, 2027.0, e.Get(MetricGDP).Float)

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, 2029, last.Year)

	_, ok = l.Get(2040)
	assert.False(t, ok)
}

func TestRecordRejectsDuplicateYear(t *testing.T) {
	l := New("")
	assert.Equal(t, config.DuplicateReject, l.Policy())
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 1)))

	err := l.Record(2025, entryWithGDP(2025, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateYear))
	assert.Equal(t, ferrors.CategoryLedger, ferrors.GetCategory(err))

	e, _ := l.Get(2025)
	assert.Equal(t, 1.0, e.Get(MetricGDP).Float)
	assert.Equal(t, 1, l.Len())
}

func TestRecordOverwriteReplacesInPlace(t *testing.T) {
	l := New(config.DuplicateOverwrite)
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 1)))
	require.NoError(t, l.Record(2026, entryWithGDP(2026, 2)))
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 9)))

	assert.Equal(t, []int{2025, 2026}, l.Years())
	e, _ := l.Get(2025)
	assert.Equal(t, 9.0, e.Get(MetricGDP).Float)
}

func TestRecordRejectsOutOfOrder(t *testing.T) {
	for _, policy := range []config.DuplicatePolicy{config.DuplicateReject, config.DuplicateOverwrite} {
		t.Run(string(policy), func(t *testing.T) {
			l := New(policy)
			require.NoError(t, l.Record(2026, NewEntry(2026)))
			err := l.Record(2025, NewEntry(2025))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfOrder))
		})
	}
}

func TestRecordUsesArgumentYear(t *testing.T) {
	l := New(config.DuplicateReject)
	require.NoError(t, l.Record(2030, NewEntry(1999)))
	assert.Equal(t, []int{2030}, l.Years())
}

func TestEntriesAreCopies(t *testing.T) {
	l := New(config.DuplicateReject)
	e := entryWithGDP(2025, 5)
	require.NoError(t, l.Record(2025, e))
	e.SetFloat(MetricGDP, 100)

	got := l.Entries()
	got[0].SetFloat(MetricGDP, 200)

	stored, _ := l.Get(2025)
	assert.Equal(t, 5.0, stored.Get(MetricGDP).Float)
}

func TestValidateReportsGapsAndExtras(t *testing.T) {
	l := New(config.DuplicateReject)
	require.NoError(t, l.Record(2025, NewEntry(2025)))
	require.NoError(t, l.Record(2027, NewEntry(2027)))

	err := l.Validate(2025, 2027)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGap))

	err = l.Validate(2025, 2025)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryLedger, ferrors.GetCategory(err))
}

func TestConcurrentReads(t *testing.T) {
	l := New(config.DuplicateReject)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = l.Export()
				_ = l.Len()
			}
		}()
	}
	for y := 2000; y < 2100; y++ {
		require.NoError(t, l.Record(y, entryWithGDP(y, 1)))
	}
	wg.Wait()
	assert.Equal(t, 100, l.Len())
}

func TestExportCSVRendersNA(t *testing.T) {
	l := New(config.DuplicateReject)
	e := entryWithGDP(2025, 1000)
	e.SetFloat(MetricInflation, 0.055)
	require.NoError(t, l.Record(2025, e))

	var buf bytes.Buffer
	require.NoError(t, l.Export().WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	header := strings.Split(lines[0], ",")
	row := strings.Split(lines[1], ",")
	require.Len(t, header, 48)
	require.Len(t, row, 48)
	assert.Equal(t, "Year", header[0])
	assert.Equal(t, "GDP", header[1])
	assert.Equal(t, "2025", row[0])
	assert.Equal(t, "1000", row[1])
	assert.Equal(t, "NA", row[2])
	assert.Equal(t, "0.055", row[3])
	assert.NotContains(t, buf.String(), "NaN")
}

func TestCSVRoundTrip(t *testing.T) {
	l := New(config.DuplicateReject)
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 1000.5)))
	require.NoError(t, l.Record(2026, entryWithGDP(2026, 1100.25)))
	want := l.Export()

	var buf bytes.Buffer
	require.NoError(t, want.WriteCSV(&buf))
	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ReadCSV(strings.NewReader("Bad,GDP\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("Year,GDP,Nope\n2025,1,2\n"))
	assert.ErrorContains(t, err, `unknown metric column "Nope"`)
}

func TestExportJSONRendersNull(t *testing.T) {
	l := New(config.DuplicateReject)
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 1000)))

	var buf bytes.Buffer
	require.NoError(t, l.Export().WriteJSON(&buf))

	var decoded struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 1)
	values := decoded.Rows[0]["values"].([]any)
	assert.Equal(t, 1000.0, values[0])
	assert.Nil(t, values[1])

	var table Table
	require.NoError(t, json.Unmarshal(buf.Bytes(), &table))
	assert.Equal(t, l.Export(), table)
}

func TestTableAccessors(t *testing.T) {
	l := New(config.DuplicateReject)
	require.NoError(t, l.Record(2025, entryWithGDP(2025, 1)))
	require.NoError(t, l.Record(2026, entryWithGDP(2026, 2)))
	table := l.Export()

	assert.Equal(t, []int{2025, 2026}, table.Years())
	assert.Equal(t, []Value{numeric.Float(1), numeric.Float(2)}, table.Column(MetricGDP))
	assert.Nil(t, table.Column("Nope"))

	v, ok := table.Value(2026, MetricGDP)
	require.True(t, ok)
	assert.Equal(t, 2.0, v.Float)
	_, ok = table.Value(2030, MetricGDP)
	assert.False(t, ok)
}

func TestSnapshotMissingRatiosAtZeroGDP(t *testing.T) {
	s := state.New(state.Initial{GDP: 1000, Inflation: 0.05, DebtStock: state.DebtStock{Total: 100, Domestic: 60, External: 40}})
	s.BeginYear(2025)
	require.NoError(t, s.MergeEconomic(state.Economic{Valid: true, GDP: 0, InflationRate: 0.05}))
	require.NoError(t, s.MergeAggregates(state.Fiscal{Valid: true, TotalRevenue: 50, TotalExpenditure: 80, Deficit: 30}))

	e := Snapshot(s.View())
	assert.Equal(t, 2025, e.Year)
	assert.True(t, e.Get(MetricGDP).Valid)
	assert.Equal(t, 0.0, e.Get(MetricGDP).Float)
	for _, m := range []Metric{MetricRevenueGDP, MetricExpenditureGDP, MetricOverallDeficitGDP, MetricPrimaryDeficitGDP, MetricDebtStockGDP} {
		assert.False(t, e.Get(m).Valid, m)
	}
	assert.Equal(t, 100.0, e.Get(MetricDebtStockTotal).Float)
	assert.Equal(t, 30.0, e.Get(MetricOverallDeficit).Float)
	assert.False(t, e.Get(MetricExports).Valid, "external sector has not run")
	assert.False(t, e.Get(MetricDSABreach).Valid)
}

func TestSnapshotRatios(t *testing.T) {
	s := state.New(state.Initial{GDP: 1000, Inflation: 0.05})
	s.BeginYear(2025)
	require.NoError(t, s.MergeEconomic(state.Economic{Valid: true, GDP: 2000, GDPGrowth: 1, InflationRate: 0.06}))
	require.NoError(t, s.MergeAggregates(state.Fiscal{Valid: true, TotalRevenue: 200, TotalExpenditure: 300, Deficit: 100}))
	require.NoError(t, s.MergeDebt(state.Debt{
		Valid: true,
		Stock: state.DebtStock{Total: 800, Domestic: 400, External: 400},
		DSA:   state.DSA{DebtToGDP: numeric.Float(0.4), ServiceToRevenue: numeric.Float(0.1)},
	}))
	require.NoError(t, s.MergePrimaryDeficit(20, 80))

	e := Snapshot(s.View())
	assert.InDelta(t, 0.1, e.Get(MetricRevenueGDP).Float, 1e-12)
	assert.InDelta(t, 0.15, e.Get(MetricExpenditureGDP).Float, 1e-12)
	assert.InDelta(t, 0.05, e.Get(MetricOverallDeficitGDP).Float, 1e-12)
	assert.InDelta(t, 0.04, e.Get(MetricPrimaryDeficitGDP).Float, 1e-12)
	assert.InDelta(t, 0.4, e.Get(MetricDebtStockGDP).Float, 1e-12)
	assert.Equal(t, 20.0, e.Get(MetricInterestPayments).Float)
	assert.Equal(t, numeric.Bool(false), e.Get(MetricDSABreach))
	assert.InDelta(t, 0.06, e.Get(MetricInflation).Float, 1e-12)
}
