package sectors

import (
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const (
	minNPL = 0.01
	minCAR = 0.05
	maxCAR = 0.25

	// nplHighWater erodes capital when exceeded.
	nplHighWater = 0.15
	// nplStabilityZero is the NPL ratio at which the NPL score reaches zero.
	nplStabilityZero = 0.20
	// carFullBuffer is the capital buffer over the requirement that scores 1.
	carFullBuffer = 0.05
)

// Financial tracks banking asset quality and capital.
type Financial struct {
	cfg config.FinancialConfig
	npl float64
	car float64
}

func NewFinancial(cfg config.FinancialConfig) *Financial {
	return &Financial{cfg: cfg, npl: cfg.InitialNPLRatio, car: cfg.InitialCAR}
}

func (f *Financial) Name() state.Sector { return state.SectorFinancial }

func (f *Financial) Consumes() []state.Dependency {
	return cur(state.FieldGDPGrowth, state.FieldSupEffectiveness)
}

func (f *Financial) Publishes() []state.Field {
	return []state.Field{state.FieldFinNPL, state.FieldFinCAR, state.FieldFinStability, state.FieldNPLRatio}
}

func (f *Financial) Advance(_ int, v state.View) state.Financial {
	growth := v.Economic().GDPGrowth
	eff := v.Supervision().Effectiveness

	f.npl += f.cfg.NPLGDPSensitivity*(growth-f.cfg.TrendGrowth) +
		f.cfg.NPLSupervisionSensitivity*(eff-f.cfg.BaselineSupervision)
	f.npl = max(minNPL, f.npl)

	if f.npl > nplHighWater {
		f.car *= 0.98
	} else {
		f.car *= 1.01
	}
	f.car = numeric.Clamp(f.car, minCAR, maxCAR)

	nplScore := max(0, 1-f.npl/nplStabilityZero)
	carScore := numeric.Clamp((f.car-f.cfg.RequiredCAR)/carFullBuffer, 0, 1)

	return state.Financial{
		Valid:          true,
		NPLRatio:       f.npl,
		CAR:            f.car,
		StabilityIndex: numeric.Clamp(0.6*nplScore+0.4*carScore, 0, 1),
	}
}
