// Package state holds the shared simulation state that the orchestrator
// mutates once per simulated year.
//
// Each sector owns one typed sub-record, replaced wholesale when the sector's
// output is merged. A small set of headline values (inflation, deficit, debt
// stock, ...) is promoted to top-level fields so later sectors can read them
// without knowing which sector produced them. Promotion is additive within a
// year: once a step has written a promoted field, only the step declared as
// that field's override may replace it.
//
// Sectors never see *Shared; they receive a View whose accessors return
// copies.
package state
