package integrators

import (
	"math"

	"github.com/san-kum/episim/internal/agent"
)

const (
	// capShare is the multiple of target/n above which one agent is slowed.
	capShare = 3.0
	// capScale is the numerator of the slow-down factor.
	capScale = 0.03
)

// Renormalize rescales tentative velocities in place toward target. A
// non-positive target disables rescaling.
func Renormalize(vels []agent.Vec2, target float64, mode Renormalization) {
	if target <= 0 {
		return
	}

	switch mode {
	case Incremental:
		running := 0.0
		for i, v := range vels {
			running += v.Norm2()
			if running > 0 {
				vels[i] = v.Scale(math.Sqrt(target / running))
			}
		}
	case Global:
		total := 0.0
		for _, v := range vels {
			total += v.Norm2()
		}
		if total == 0 {
			return
		}
		f := math.Sqrt(target / total)
		for i, v := range vels {
			vels[i] = v.Scale(f)
		}
	}
}

// CapSpeed slows an agent whose speed ratio sqrt(|v|²/target) exceeds
// capShare/n, scaling it by capScale over that ratio.
func CapSpeed(v agent.Vec2, target float64, n int) (agent.Vec2, bool) {
	if target <= 0 || n == 0 {
		return v, false
	}
	ratio := math.Sqrt(v.Norm2() / target)
	if ratio > capShare/float64(n) {
		return v.Scale(capScale / ratio), true
	}
	return v, false
}

// TargetEnergy is the sum of squared speeds, fixed at initialization.
func TargetEnergy(agents []*agent.Agent) float64 {
	return agent.KineticEnergy(agents)
}
