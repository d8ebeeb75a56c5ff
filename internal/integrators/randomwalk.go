package integrators

import "github.com/san-kum/episim/internal/agent"

// noiseDivisor scales temperature into the per-tick velocity kick.
const noiseDivisor = 15.0

type RandomWalk struct {
	scratch buffers
}

func NewRandomWalk() *RandomWalk {
	return &RandomWalk{}
}

func (r *RandomWalk) UsesForces() bool { return false }

func (r *RandomWalk) Prepare([]*agent.Agent) {}

func (r *RandomWalk) Advance(agents []*agent.Agent, p Params, rng agent.Rand) Report {
	n := len(agents)
	r.scratch.ensure(n)

	kick := p.Temperature / noiseDivisor
	for i, a := range agents {
		v := a.Velocity()
		r.scratch.pos[i] = a.Position().Add(v.Scale(p.Dt))

		noise := agent.Vec2{X: rng.NormFloat64() * kick, Y: rng.NormFloat64() * kick}
		r.scratch.vel[i] = v.Add(noise)
	}

	return r.scratch.commit(agents, p)
}
