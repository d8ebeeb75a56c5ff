package integrators

import "github.com/san-kum/episim/internal/agent"

type Leapfrog struct {
	prevAcc []agent.Vec2
	scratch buffers
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) UsesForces() bool { return true }

func (l *Leapfrog) Prepare(agents []*agent.Agent) {
	if len(l.prevAcc) != len(agents) {
		l.prevAcc = make([]agent.Vec2, len(agents))
	}
	for i, a := range agents {
		l.prevAcc[i] = a.Acceleration()
	}
}

// Advance must follow Prepare and the interaction pass of the same tick.
func (l *Leapfrog) Advance(agents []*agent.Agent, p Params, _ agent.Rand) Report {
	n := len(agents)
	if len(l.prevAcc) != n {
		// Membership changed without Prepare; treat every agent as fresh.
		l.prevAcc = make([]agent.Vec2, n)
	}
	l.scratch.ensure(n)

	dt := p.Dt
	halfDt := 0.5 * dt
	halfDt2 := 0.5 * dt * dt

	for i, a := range agents {
		prev := l.prevAcc[i]
		acc := a.Acceleration()

		l.scratch.pos[i] = a.Position().Add(a.Velocity().Scale(dt)).Add(prev.Scale(halfDt2))
		l.scratch.vel[i] = a.Velocity().Add(acc.Scale(halfDt))

		a.SetAcceleration(acc.Sub(prev))
	}

	return l.scratch.commit(agents, p)
}
