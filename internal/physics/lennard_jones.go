package physics

import "math"

// Potential constants, in arena units.
const (
	Epsilon = 2.0
	Sigma   = 7.5

	// CutoffFactor times the agent radius bounds the repulsion range.
	CutoffFactor = 3.0
)

var sigma6 = math.Pow(Sigma, 6)

// LennardJones is the force magnitude at separation r, the negative
// derivative of 4ε((σ/r)^12 - (σ/r)^6). Positive values push apart.
func LennardJones(r float64) float64 {
	r6 := math.Pow(r, 6)
	return -24 * Epsilon * sigma6 * (r6 - 2*sigma6) / math.Pow(r, 13)
}

// pairForce is the force on a from b, or false when the pair is outside
// the cutoff or coincident.
func pairForce(a, b agentPos, cutoff float64) (fx, fy float64, ok bool) {
	dx := a.x - b.x
	dy := a.y - b.y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= 0 || dist >= cutoff {
		return 0, 0, false
	}
	f := LennardJones(dist) / dist
	return f * dx, f * dy, true
}

type agentPos struct {
	x, y float64
}
