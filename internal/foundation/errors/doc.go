// Package errors provides the classified error primitives used across fiscalsim.
//
// A ClassifiedError carries a category (config, simulation, ledger, ...), a
// severity and a small structured context, and is built with a fluent API:
//
//	err := errors.NewError(errors.CategoryConfig, "start_year is required").
//		Fatal().
//		WithContext("file", path).
//		Build()
//
// The CLI and HTTP adapters translate categories into exit codes and status
// codes respectively.
package errors
