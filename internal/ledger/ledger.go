// Package ledger holds the year-indexed record of simulated metrics.
//
// A Ledger is written by exactly one run loop and may be read concurrently
// (for example by the HTTP API while a run is in progress).
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
)

var (
	// ErrDuplicateYear is returned when a year is recorded twice under the
	// reject policy.
	ErrDuplicateYear = errors.New("duplicate year")
	// ErrOutOfOrder is returned when a new year does not follow the last
	// recorded one.
	ErrOutOfOrder = errors.New("year out of order")
	// ErrGap is returned by Validate when a year in range has no entry.
	ErrGap = errors.New("missing year")
)

// Ledger is an append-only, year-ordered sequence of entries.
type Ledger struct {
	mu      sync.RWMutex
	policy  config.DuplicatePolicy
	entries []Entry
	byYear  map[int]int
}

// New returns an empty ledger with the given duplicate-year policy. An empty
// policy rejects duplicates.
func New(policy config.DuplicatePolicy) *Ledger {
	if policy == "" {
		policy = config.DuplicateReject
	}
	return &Ledger{policy: policy, byYear: make(map[int]int)}
}

// Policy returns the duplicate-year policy.
func (l *Ledger) Policy() config.DuplicatePolicy { return l.policy }

// Record appends the snapshot for year. A year already present fails with
// ErrDuplicateYear unless the policy is overwrite, in which case the entry is
// replaced in place. A new year lower than the last recorded one fails with
// ErrOutOfOrder.
func (l *Ledger) Record(year int, e Entry) error {
	e = e.clone()
	e.Year = year

	l.mu.Lock()
	defer l.mu.Unlock()

	if i, ok := l.byYear[year]; ok {
		if l.policy != config.DuplicateOverwrite {
			return ferrors.LedgerError(fmt.Sprintf("year %d already recorded", year)).
				WithCause(ErrDuplicateYear).
				WithContext("year", year).
				Build()
		}
		l.entries[i] = e
		return nil
	}
	if n := len(l.entries); n > 0 && year < l.entries[n-1].Year {
		return ferrors.LedgerError(fmt.Sprintf("year %d recorded after %d", year, l.entries[n-1].Year)).
			WithCause(ErrOutOfOrder).
			WithContext("year", year).
			Build()
	}
	l.byYear[year] = len(l.entries)
	l.entries = append(l.entries, e)
	return nil
}

// Len returns the number of recorded years.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Years returns the recorded years in order.
func (l *Ledger) Years() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	years := make([]int, len(l.entries))
	for i, e := range l.entries {
		years[i] = e.Year
	}
	return years
}

// Get returns a copy of the entry for year.
func (l *Ledger) Get(year int) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byYear[year]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i].clone(), true
}

// Entries returns copies of all entries in year order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}

// Last returns the most recent entry.
func (l *Ledger) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1].clone(), true
}

// Validate checks that exactly the years start..end are present, in order.
func (l *Ledger) Validate(start, end int) error {
	years := l.Years()
	want := end - start + 1
	if want < 0 {
		want = 0
	}
	for i := range want {
		y := start + i
		if i >= len(years) || years[i] != y {
			return ferrors.LedgerError(fmt.Sprintf("year %d missing from ledger", y)).
				WithCause(ErrGap).
				WithContext("year", y).
				Build()
		}
	}
	if len(years) != want {
		return ferrors.LedgerError(fmt.Sprintf("ledger holds %d years, expected %d", len(years), want)).
			WithContext("years", len(years)).
			Build()
	}
	return nil
}

// Export returns the ledger as a table, one row per year and one column per
// tracked metric.
func (l *Ledger) Export() Table {
	entries := l.Entries()
	t := Table{Columns: Catalogue(), Rows: make([]Row, len(entries))}
	for i, e := range entries {
		t.Rows[i] = Row{Year: e.Year, Values: e.Values()}
	}
	return t
}
