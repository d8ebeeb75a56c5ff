package metrics

import "github.com/san-kum/episim/internal/sim"

// PeakInfected is the largest infected count seen, quarantined agents
// included.
type PeakInfected struct {
	peak int
}

func NewPeakInfected() *PeakInfected { return &PeakInfected{} }

func (p *PeakInfected) Name() string { return "peak_infected" }

func (p *PeakInfected) Observe(s sim.Snapshot) {
	if n := s.Counts.Infected + s.Counts.Quarantined; n > p.peak {
		p.peak = n
	}
}

func (p *PeakInfected) Value() float64 { return float64(p.peak) }

func (p *PeakInfected) Reset() { p.peak = 0 }

// AttackRate is the share of the population that has left the susceptible
// state by the last snapshot.
type AttackRate struct {
	last sim.Counts
}

func NewAttackRate() *AttackRate { return &AttackRate{} }

func (a *AttackRate) Name() string { return "attack_rate" }

func (a *AttackRate) Observe(s sim.Snapshot) { a.last = s.Counts }

func (a *AttackRate) Value() float64 {
	total := a.last.Total()
	if total == 0 {
		return 0
	}
	return float64(total-a.last.Susceptible) / float64(total)
}

func (a *AttackRate) Reset() { a.last = sim.Counts{} }

// History keeps the census of every snapshot in memory.
type History struct {
	Ticks  []int
	Counts []sim.Counts
}

func NewHistory() *History { return &History{} }

func (h *History) OnStep(s sim.Snapshot) {
	h.Ticks = append(h.Ticks, s.Tick)
	h.Counts = append(h.Counts, s.Counts)
}

// PeakTick is the first tick with the highest infected count, or -1 when
// nothing was recorded.
func (h *History) PeakTick() int {
	best, tick := -1, -1
	for i, c := range h.Counts {
		if c.Infected+c.Quarantined > best {
			best = c.Infected + c.Quarantined
			tick = h.Ticks[i]
		}
	}
	return tick
}
