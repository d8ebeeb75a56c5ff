package metrics

import (
	"math"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/sim"
)

// Energy is the mean total kinetic energy over the observed snapshots.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Snapshot) {
	e.totalEnergy += agent.KineticEnergy(s.Agents)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation of the kinetic energy from
// the target the integrators rescale toward.
type EnergyDrift struct {
	name     string
	target   float64
	maxDrift float64
}

func NewEnergyDrift(target float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		target: target,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	if e.target == 0 {
		return
	}
	energy := agent.KineticEnergy(s.Agents)
	drift := math.Abs(energy-e.target) / math.Abs(e.target)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.maxDrift = 0
}
