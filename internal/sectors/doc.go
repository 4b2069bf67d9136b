// Package sectors implements the twelve sector models advanced once per
// simulated year: governance, banking supervision, the financial sector,
// monetary policy, the external sector, development finance, revenue, fiscal
// federalism, expenditure, state-owned enterprises, public debt and policy
// coordination.
//
// A model is built once from its config sub-document, keeps private running
// state, and exposes Advance, which reads a state.View and returns the
// sector's typed record. Models never mutate shared state; the engine merges
// their output. Models whose stocks are sized from GDP stay Uninitialized
// until the first year GDP is positive and return an empty record until then.
package sectors
