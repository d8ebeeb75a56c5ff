package integrators

import (
	"fmt"

	"github.com/san-kum/episim/internal/agent"
)

// Params are the per-tick integration inputs.
type Params struct {
	Dt              float64
	TargetEnergy    float64
	Temperature     float64
	Renormalization Renormalization
}

// Report summarises one Advance.
type Report struct {
	Reflections int
	Clamps      int
	Recoveries  int
	Capped      int
	Energy      float64
}

// Stepper is one integration scheme.
type Stepper interface {
	// UsesForces reports whether the interaction pass before Advance must
	// accumulate repulsion.
	UsesForces() bool
	// Prepare captures whatever Advance needs from before the interaction pass.
	Prepare(agents []*agent.Agent)
	Advance(agents []*agent.Agent, p Params, rng agent.Rand) Report
}

func New(mode Mode) (Stepper, error) {
	switch mode {
	case Potential:
		return NewLeapfrog(), nil
	case Diffusive:
		return NewRandomWalk(), nil
	default:
		return nil, fmt.Errorf("unknown mode: %v", mode)
	}
}

// buffers holds the tentative positions and velocities of one tick.
type buffers struct {
	pos []agent.Vec2
	vel []agent.Vec2
}

func (b *buffers) ensure(n int) {
	if len(b.pos) != n {
		b.pos = make([]agent.Vec2, n)
		b.vel = make([]agent.Vec2, n)
	}
}

// commit renormalizes, caps and applies the tentative state in order.
func (b *buffers) commit(agents []*agent.Agent, p Params) Report {
	var rep Report
	Renormalize(b.vel, p.TargetEnergy, p.Renormalization)

	n := len(agents)
	for i, a := range agents {
		v, capped := CapSpeed(b.vel[i], p.TargetEnergy, n)
		if capped {
			rep.Capped++
		}

		tr := a.Update(b.pos[i], v)
		if tr.Reflected.Any() {
			rep.Reflections++
		}
		if tr.Clamped.Any() {
			rep.Clamps++
		}
		if tr.Recovered {
			rep.Recoveries++
		}
		rep.Energy += a.Velocity().Norm2()
	}
	return rep
}
