package integrators

import (
	"math/rand"
	"testing"

	"github.com/san-kum/episim/internal/agent"
)

func benchAgents(b *testing.B, n int) []*agent.Agent {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	agents := make([]*agent.Agent, n)
	for i := range agents {
		p := agent.DefaultParams()
		p.Position = agent.Vec2{X: 5 + 90*rng.Float64(), Y: 5 + 90*rng.Float64()}
		p.Velocity = agent.Vec2{X: rng.NormFloat64() * 100, Y: rng.NormFloat64() * 100}
		a, err := agent.New(p)
		if err != nil {
			b.Fatal(err)
		}
		agents[i] = a
	}
	return agents
}

func benchStepper(b *testing.B, s Stepper) {
	agents := benchAgents(b, 100)
	rng := rand.New(rand.NewSource(2))
	p := Params{Dt: 0.0001, TargetEnergy: TargetEnergy(agents), Temperature: 100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Prepare(agents)
		s.Advance(agents, p, rng)
	}
}

func BenchmarkLeapfrog(b *testing.B) {
	benchStepper(b, NewLeapfrog())
}

func BenchmarkRandomWalk(b *testing.B) {
	benchStepper(b, NewRandomWalk())
}

func BenchmarkRenormalizeIncremental(b *testing.B) {
	vels := make([]agent.Vec2, 100)
	for i := range vels {
		vels[i] = agent.Vec2{X: float64(i), Y: 1}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Renormalize(vels, 5000, Incremental)
	}
}
