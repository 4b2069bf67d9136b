package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
)

// RunFunc performs one simulation run. reason names the trigger.
type RunFunc func(ctx context.Context, reason string) error

// Coalescer serializes runs and merges bursts of triggers.
type Coalescer struct {
	run    RunFunc
	logger *slog.Logger
	wake   chan struct{}

	mu        sync.Mutex
	reason    string
	running   bool
	runs      int
	coalesced int
	lastErr   error
}

// NewCoalescer returns a Coalescer that calls run from its Run loop.
func NewCoalescer(run RunFunc, logger *slog.Logger) *Coalescer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coalescer{run: run, logger: logger, wake: make(chan struct{}, 1)}
}

// Trigger requests a run. It never blocks.
func (c *Coalescer) Trigger(reason string) {
	c.mu.Lock()
	c.reason = reason
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
		c.mu.Lock()
		c.coalesced++
		c.mu.Unlock()
		c.logger.Debug("Run already pending", slog.String("reason", reason))
	}
}

// Run processes triggers until ctx is done.
func (c *Coalescer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.wake:
		}

		c.mu.Lock()
		reason := c.reason
		c.running = true
		c.mu.Unlock()

		c.logger.Info("Starting triggered run", slog.String("reason", reason))
		err := c.run(ctx, reason)
		if err != nil {
			c.logger.Error("Triggered run failed", slog.String("reason", reason), logfields.Error(err))
		}

		c.mu.Lock()
		c.running = false
		c.runs++
		c.lastErr = err
		c.mu.Unlock()
	}
}

// Stats is a snapshot of coalescer activity.
type Stats struct {
	Runs      int
	Coalesced int
	Running   bool
	LastError error
}

func (c *Coalescer) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Runs: c.runs, Coalesced: c.coalesced, Running: c.running, LastError: c.lastErr}
}
