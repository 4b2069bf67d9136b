package engine

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/deluair/BD-publicfinance-simulation/internal/sectors"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSeed overrides the configured seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithRand injects the random streams; the run seed becomes streams.Seed().
func WithRand(streams sectors.Streams) Option {
	return func(e *Engine) {
		e.streams = &streams
		e.seed = streams.Seed()
	}
}

// WithObserver adds an observer. Observers are called in the order added.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithTracer sets the tracer used for run and year spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(e *Engine) { e.runID = id }
}
