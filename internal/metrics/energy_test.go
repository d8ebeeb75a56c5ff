package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/sim"
)

func movingAgents(t *testing.T, vs ...agent.Vec2) []*agent.Agent {
	t.Helper()
	agents := make([]*agent.Agent, len(vs))
	for i, v := range vs {
		p := agent.DefaultParams()
		p.Position = agent.Vec2{X: 10 + float64(i)*3, Y: 50}
		p.Velocity = v
		a, err := agent.New(p)
		if err != nil {
			t.Fatal(err)
		}
		agents[i] = a
	}
	return agents
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(sim.Snapshot{Agents: movingAgents(t, agent.Vec2{X: 3, Y: 4})})
	m.Observe(sim.Snapshot{Agents: movingAgents(t, agent.Vec2{X: 1})})

	if got := m.Value(); math.Abs(got-13) > 1e-12 {
		t.Errorf("mean energy = %v, want 13", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(10)
	m.Observe(sim.Snapshot{Agents: movingAgents(t, agent.Vec2{X: 3}, agent.Vec2{X: 1})})
	m.Observe(sim.Snapshot{Agents: movingAgents(t, agent.Vec2{X: 2}, agent.Vec2{X: 1})})

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("drift = %v, want 0.5", got)
	}

	zero := NewEnergyDrift(0)
	zero.Observe(sim.Snapshot{Agents: movingAgents(t, agent.Vec2{X: 3})})
	if zero.Value() != 0 {
		t.Error("zero target should not report drift")
	}
}
