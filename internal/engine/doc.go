// Package engine runs a simulation: it builds the sector registry from
// configuration, validates the ordered step plan, and advances the shared
// state one year at a time, snapshotting every completed year into the
// result ledger.
//
// # Year loop
//
// Each year executes the same fixed plan: the economic update, the sectors
// from governance to SOE, the fiscal aggregates, debt, the primary deficit,
// policy coordination and the ledger snapshot. A step sees every value
// published by earlier steps this year and last year's value for everything
// else.
//
// # Cancellation
//
// The context is checked between years. A canceled run keeps the years it
// completed and reports StatusCanceled.
//
// # Thread Safety
//
// An Engine runs once and is not safe for concurrent use. Its Ledger may be
// read from other goroutines while the run is in progress.
package engine
