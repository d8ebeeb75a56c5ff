package metrics

import (
	"github.com/san-kum/episim/internal/physics"
	"github.com/san-kum/episim/internal/sim"
)

// Contacts is the mean number of agent pairs closer than radius per
// snapshot.
type Contacts struct {
	name    string
	radius  float64
	pairs   int
	samples int
}

func NewContacts(radius float64) *Contacts {
	return &Contacts{
		name:   "contacts",
		radius: radius,
	}
}

func (c *Contacts) Name() string {
	return c.name
}

func (c *Contacts) Observe(s sim.Snapshot) {
	c.samples++
	for i, a := range s.Agents {
		for _, b := range s.Agents[i+1:] {
			if physics.Distance(a, b) < c.radius {
				c.pairs++
			}
		}
	}
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.pairs) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.pairs = 0
	c.samples = 0
}

// Default is the metric set reported for every run.
func Default(targetEnergy, contactRadius float64) []sim.Metric {
	return []sim.Metric{
		NewPeakInfected(),
		NewAttackRate(),
		NewEnergy(),
		NewEnergyDrift(targetEnergy),
		NewContacts(contactRadius),
	}
}
