package physics

import (
	"math"

	"github.com/san-kum/episim/internal/agent"
)

// parallelThreshold is the population below which goroutines cost more than
// the pair loop they would split.
const parallelThreshold = 32

// Stats counts what one pass did.
type Stats struct {
	Pairs      int
	Repelled   int
	Infections int
}

func (s Stats) add(o Stats) Stats {
	return Stats{
		Pairs:      s.Pairs + o.Pairs,
		Repelled:   s.Repelled + o.Repelled,
		Infections: s.Infections + o.Infections,
	}
}

// Engine runs the pairwise interaction pass.
type Engine struct {
	workers int
}

// NewEngine returns a serial engine.
func NewEngine() *Engine {
	return &Engine{workers: 1}
}

// NewParallelEngine spreads repulsion over workers goroutines once the
// population is large enough.
func NewParallelEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

func (e *Engine) Workers() int { return e.workers }

// Interact accumulates repulsion into every agent's acceleration and
// applies transmission, in that order per pair.
func (e *Engine) Interact(agents []*agent.Agent, rng agent.Rand) Stats {
	if e.workers > 1 && len(agents) >= parallelThreshold {
		st := e.Repel(agents)
		st.Infections = e.Transmit(agents, rng).Infections
		return st
	}

	var st Stats
	for i, a := range agents {
		for _, b := range agents[i+1:] {
			st.Pairs++
			if repel(a, b) {
				st.Repelled++
			}
			st.Infections += transmit(a, b, rng)
		}
	}
	return st
}

// Repel accumulates only the repulsion forces.
func (e *Engine) Repel(agents []*agent.Agent) Stats {
	if e.workers > 1 && len(agents) >= parallelThreshold {
		return e.repelParallel(agents)
	}
	var st Stats
	for i, a := range agents {
		for _, b := range agents[i+1:] {
			st.Pairs++
			if repel(a, b) {
				st.Repelled++
			}
		}
	}
	return st
}

// Transmit runs only the infection checks, serially in pair order.
func (e *Engine) Transmit(agents []*agent.Agent, rng agent.Rand) Stats {
	var st Stats
	for i, a := range agents {
		for _, b := range agents[i+1:] {
			st.Infections += transmit(a, b, rng)
		}
	}
	st.Pairs = len(agents) * (len(agents) - 1) / 2
	return st
}

func repel(a, b *agent.Agent) bool {
	pa, pb := a.Position(), b.Position()
	fx, fy, ok := pairForce(agentPos{pa.X, pa.Y}, agentPos{pb.X, pb.Y}, CutoffFactor*a.Radius())
	if !ok {
		return false
	}
	f := agent.Vec2{X: fx, Y: fy}
	a.AddAcceleration(f)
	b.AddAcceleration(f.Scale(-1))
	return true
}

// transmit checks both directions of one pair. Each side is exposed when
// the distance is inside its own infection radius.
func transmit(a, b *agent.Agent, rng agent.Rand) int {
	dist := Distance(a, b)
	if dist <= 0 {
		return 0
	}
	n := 0
	if dist < a.InfectionRadius() && b.WillInfect(a, rng) {
		if a.Infect() {
			n++
		}
	}
	if dist < b.InfectionRadius() && a.WillInfect(b, rng) {
		if b.Infect() {
			n++
		}
	}
	return n
}

// Distance is the separation used by both checks.
func Distance(a, b *agent.Agent) float64 {
	pa, pb := a.Position(), b.Position()
	return math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
}
