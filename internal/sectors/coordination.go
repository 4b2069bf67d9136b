package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minCoordination = 0.1
	maxCoordination = 0.9
)

// Coordination scores fiscal-monetary alignment. High inflation together
// with a high deficit ratio is a conflict; strong institutions add a bonus.
type Coordination struct {
	cfg   config.CoordinationConfig
	score float64
}

func NewCoordination(cfg config.CoordinationConfig) *Coordination {
	return &Coordination{cfg: cfg, score: cfg.BaseCoordinationScore}
}

func (c *Coordination) Name() state.Sector { return state.SectorCoordination }

func (c *Coordination) Consumes() []state.Dependency {
	return cur(state.FieldInflation, state.FieldDeficit, state.FieldGDP, state.FieldGovernanceIndex)
}

func (c *Coordination) Publishes() []state.Field {
	return []state.Field{state.FieldCoordScore}
}

func (c *Coordination) Advance(_ int, v state.View) state.Coordination {
	deficitGDP := numeric.Ratio(v.Deficit(), v.Economic().GDP).Or(0)
	conflict := v.Inflation() > c.cfg.ConflictThresholdInflation && deficitGDP > c.cfg.ConflictThresholdDeficit

	change := 0.0
	if conflict {
		change += c.cfg.ConflictImpact
	}
	if framework := v.GovernanceIndex() / 100; framework > 0.5 {
		change += c.cfg.InstitutionalImpact * (framework - 0.5) * 2
	}
	c.score = numeric.Clamp(c.score+change, minCoordination, maxCoordination)

	return state.Coordination{Valid: true, Score: c.score, Conflict: conflict}
}
