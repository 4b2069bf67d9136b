package sectors

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Streams derives one independent PCG stream per sector from a run seed, so
// adding draws in one sector never shifts another sector's sequence.
type Streams struct {
	seed uint64
}

// NewStreams returns a stream factory for seed.
func NewStreams(seed uint64) Streams { return Streams{seed: seed} }

// Seed returns the run seed.
func (s Streams) Seed() uint64 { return s.seed }

// For returns a fresh generator for the named consumer.
func (s Streams) For(name state.Sector) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return rand.New(rand.NewPCG(s.seed, h.Sum64()))
}

// uniform draws from [lo, hi). A degenerate range returns lo.
func uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
