package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/episim/internal/agent"
)

type fixedRand struct {
	norm float64
}

func (f fixedRand) Float64() float64     { return 0.5 }
func (f fixedRand) NormFloat64() float64 { return f.norm }

func newAgent(t *testing.T, x, y, vx, vy float64) *agent.Agent {
	t.Helper()
	p := agent.DefaultParams()
	p.Position = agent.Vec2{X: x, Y: y}
	p.Velocity = agent.Vec2{X: vx, Y: vy}
	a, err := agent.New(p)
	if err != nil {
		t.Fatalf("agent.New: %v", err)
	}
	return a
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"potential", Potential, false},
		{"", Potential, false},
		{"diffusive", Diffusive, false},
		{"randomwalk", Diffusive, false},
		{"brownian", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}

	if _, err := New(Mode(9)); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRenormalizeIncremental(t *testing.T) {
	vels := []agent.Vec2{{X: 1}, {X: -1}}
	Renormalize(vels, 2, Incremental)

	// The first agent only sees its own contribution in the running sum.
	if !near(vels[0].X, math.Sqrt2, 1e-12) {
		t.Errorf("first velocity = %v, want sqrt(2)", vels[0].X)
	}
	if !near(vels[1].X, -1, 1e-12) {
		t.Errorf("second velocity = %v, want -1", vels[1].X)
	}
}

func TestRenormalizeGlobal(t *testing.T) {
	vels := []agent.Vec2{{X: 3}, {Y: 4}}
	Renormalize(vels, 100, Global)

	total := vels[0].Norm2() + vels[1].Norm2()
	if !near(total, 100, 1e-9) {
		t.Errorf("total energy = %v, want 100", total)
	}
	if !near(vels[0].X, 6, 1e-12) || !near(vels[1].Y, 8, 1e-12) {
		t.Errorf("velocities = %v", vels)
	}
}

func TestRenormalizeDegenerate(t *testing.T) {
	zero := []agent.Vec2{{}, {}}
	Renormalize(zero, 5, Incremental)
	Renormalize(zero, 5, Global)
	for _, v := range zero {
		if v != (agent.Vec2{}) || !v.IsValid() {
			t.Errorf("zero velocity became %v", v)
		}
	}

	vels := []agent.Vec2{{X: 2}}
	Renormalize(vels, 0, Incremental)
	if vels[0].X != 2 {
		t.Errorf("non-positive target rescaled: %v", vels[0])
	}
}

func TestCapSpeed(t *testing.T) {
	tests := []struct {
		name   string
		v      agent.Vec2
		target float64
		n      int
		want   agent.Vec2
		capped bool
	}{
		{"slow agent", agent.Vec2{X: 0.1}, 1, 10, agent.Vec2{X: 0.1}, false},
		{"below threshold", agent.Vec2{X: 0.25}, 1, 10, agent.Vec2{X: 0.25}, false},
		{"runaway agent", agent.Vec2{X: 1}, 1, 10, agent.Vec2{X: 0.03}, true},
		{"small population share", agent.Vec2{X: 3, Y: 4}, 25, 2, agent.Vec2{X: 0.09, Y: 0.12}, false},
		{"zero target", agent.Vec2{X: 9}, 0, 10, agent.Vec2{X: 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, capped := CapSpeed(tt.v, tt.target, tt.n)
			if tt.capped != capped {
				t.Errorf("capped = %v, want %v", capped, tt.capped)
			}
			if tt.capped && (!near(got.X, tt.want.X, 1e-12) || !near(got.Y, tt.want.Y, 1e-12)) {
				t.Errorf("CapSpeed = %v, want %v", got, tt.want)
			}
			if !tt.capped && got != tt.v {
				t.Errorf("uncapped velocity changed: %v", got)
			}
		})
	}
}

func TestLeapfrogKeepsOpposedSpeeds(t *testing.T) {
	a := newAgent(t, 20, 50, 1, 0)
	b := newAgent(t, 80, 50, -1, 0)
	agents := []*agent.Agent{a, b}

	lf := NewLeapfrog()
	lf.Prepare(agents)
	// No interaction pass: the pair is far outside the cutoff.
	lf.Advance(agents, Params{Dt: 0.01, TargetEnergy: 2, Renormalization: Global}, nil)

	for i, ag := range agents {
		if !near(ag.Velocity().Norm(), 1, 1e-12) {
			t.Errorf("agent %d speed = %v, want 1", i, ag.Velocity().Norm())
		}
	}
	if !near(a.Position().X, 20.01, 1e-9) || !near(b.Position().X, 79.99, 1e-9) {
		t.Errorf("positions = %v %v", a.Position(), b.Position())
	}
}

func TestLeapfrogIncrementalArtifact(t *testing.T) {
	a := newAgent(t, 20, 50, 1, 0)
	b := newAgent(t, 80, 50, -1, 0)
	agents := []*agent.Agent{a, b}

	lf := NewLeapfrog()
	lf.Prepare(agents)
	lf.Advance(agents, Params{Dt: 0.01, TargetEnergy: 2, Renormalization: Incremental}, nil)

	if !near(a.Velocity().X, math.Sqrt2, 1e-12) {
		t.Errorf("first agent vx = %v, want sqrt(2)", a.Velocity().X)
	}
	if !near(b.Velocity().X, -1, 1e-12) {
		t.Errorf("second agent vx = %v, want -1", b.Velocity().X)
	}
}

func TestLeapfrogDrainsPreviousAcceleration(t *testing.T) {
	a := newAgent(t, 50, 50, 2, 0)
	prev := agent.Vec2{X: 100, Y: -40}
	force := agent.Vec2{X: -30, Y: 10}
	a.SetAcceleration(prev)
	agents := []*agent.Agent{a}

	lf := NewLeapfrog()
	lf.Prepare(agents)
	a.AddAcceleration(force) // stands in for the interaction pass

	dt := 0.1
	lf.Advance(agents, Params{Dt: dt}, nil)

	if a.Acceleration() != force {
		t.Errorf("acceleration after drain = %v, want %v", a.Acceleration(), force)
	}

	wantX := 50 + 2*dt + 0.5*dt*dt*prev.X
	wantY := 50 + 0.5*dt*dt*prev.Y
	if !near(a.Position().X, wantX, 5e-4) || !near(a.Position().Y, wantY, 5e-4) {
		t.Errorf("position = %v, want (%v, %v)", a.Position(), wantX, wantY)
	}

	wantV := agent.Vec2{X: 2 + 0.5*dt*(prev.X+force.X), Y: 0.5 * dt * (prev.Y + force.Y)}
	if !near(a.Velocity().X, wantV.X, 1e-12) || !near(a.Velocity().Y, wantV.Y, 1e-12) {
		t.Errorf("velocity = %v, want %v", a.Velocity(), wantV)
	}

	// A second tick without new forces must not reuse the drained value twice.
	lf.Prepare(agents)
	lf.Advance(agents, Params{Dt: dt}, nil)
	if a.Acceleration() != (agent.Vec2{}) {
		t.Errorf("acceleration after force-free tick = %v, want zero", a.Acceleration())
	}
}

func TestRandomWalkKick(t *testing.T) {
	a := newAgent(t, 50, 50, 1, -1)
	agents := []*agent.Agent{a}

	rw := NewRandomWalk()
	if rw.UsesForces() {
		t.Error("random walk should not request forces")
	}
	rw.Prepare(agents)
	rw.Advance(agents, Params{Dt: 0.5, Temperature: 30}, fixedRand{norm: 1})

	if a.Velocity() != (agent.Vec2{X: 3, Y: 1}) {
		t.Errorf("velocity = %v, want {3 1}", a.Velocity())
	}
	if a.Position() != (agent.Vec2{X: 50.5, Y: 49.5}) {
		t.Errorf("position = %v, want {50.5 49.5}", a.Position())
	}
}

func TestAdvanceReportsWallEvents(t *testing.T) {
	p := agent.DefaultParams()
	p.Position = agent.Vec2{X: agent.DefaultRadius, Y: 50}
	p.Velocity = agent.Vec2{X: -5}
	p.Status = agent.Infected
	p.RecoveryCountdown = 1
	a, err := agent.New(p)
	if err != nil {
		t.Fatal(err)
	}

	rep := NewRandomWalk().Advance([]*agent.Agent{a}, Params{Dt: 1}, fixedRand{})
	if rep.Reflections != 1 || rep.Clamps != 1 || rep.Recoveries != 1 {
		t.Errorf("report = %+v", rep)
	}
	if a.Velocity().X != 5 {
		t.Errorf("vx = %v, want 5", a.Velocity().X)
	}
	if rep.Energy != 25 {
		t.Errorf("energy = %v, want 25", rep.Energy)
	}
}
