package sectors

import "fmt"

// Phase is a sector's initialisation state.
type Phase int

const (
	// Uninitialized sectors have not yet seen a positive GDP and return
	// their empty record.
	Uninitialized Phase = iota
	Active
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Lifecycle tracks the Uninitialized -> Active transition of one sector.
// The zero value is Uninitialized.
type Lifecycle struct {
	phase Phase
	since int
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase { return l.phase }

// Active reports whether the sector has initialised its stocks.
func (l *Lifecycle) Active() bool { return l.phase == Active }

// activatedIn returns the year the sector became active, or zero.
func (l *Lifecycle) activatedIn() int { return l.since }

// Transition moves from one phase to another. The only allowed transition is
// Uninitialized -> Active; anything else is an error and leaves l unchanged.
func (l *Lifecycle) Transition(year int, from, to Phase) error {
	if l.phase != from {
		return fmt.Errorf("invalid lifecycle transition: expected %s, got %s", from, l.phase)
	}
	if from != Uninitialized || to != Active {
		return fmt.Errorf("disallowed lifecycle transition: %s -> %s", from, to)
	}
	l.phase = to
	l.since = year
	return nil
}

// activateIfReady performs the Uninitialized -> Active transition when gdp is
// positive and reports whether the sector is active afterwards. init runs
// exactly once, on the transition.
func (l *Lifecycle) activateIfReady(year int, gdp float64, init func(gdp float64)) bool {
	if l.Active() {
		return true
	}
	if !(gdp > 0) {
		return false
	}
	if err := l.Transition(year, Uninitialized, Active); err != nil {
		return false
	}
	init(gdp)
	return true
}
