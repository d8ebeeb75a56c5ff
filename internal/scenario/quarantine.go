package scenario

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/sim"
)

// Quarantine is an arena from which infected agents are detected and held
// apart until they recover. Held agents do not move or interact; only their
// recovery countdown runs.
type Quarantine struct {
	*arena
	detection float64
	rng       *rand.Rand
	held      []*agent.Agent
	detected  int
	released  int
}

func buildQuarantine(opts Options, rng *rand.Rand) (Scenario, error) {
	if !validRate(opts.DetectionRate) {
		return nil, fmt.Errorf("quarantine: detection rate must not be negative, got %f", opts.DetectionRate)
	}
	a, err := newArena("quarantine", opts, opts.Mode, rng)
	if err != nil {
		return nil, err
	}
	return &Quarantine{
		arena:     a,
		detection: opts.DetectionRate * opts.Dt,
		rng:       rng,
	}, nil
}

// Step ticks the arena, moves newly detected agents into quarantine, then
// advances every held agent and releases the recovered ones.
func (q *Quarantine) Step() {
	q.pop.Step()
	q.detect()
	q.release()
}

func (q *Quarantine) detect() {
	for i := 0; i < q.pop.Len(); {
		a := q.pop.Agents()[i]
		if a.IsInfected() && q.rng.Float64() < q.detection {
			q.held = append(q.held, q.pop.RemoveAt(i))
			q.detected++
			continue
		}
		i++
	}
}

func (q *Quarantine) release() {
	kept := q.held[:0]
	for _, a := range q.held {
		a.Update(a.Position(), a.Velocity())
		if a.IsRecovered() {
			q.pop.Add(a)
			q.released++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(q.held); i++ {
		q.held[i] = nil
	}
	q.held = kept
}

func (q *Quarantine) Census() sim.Counts {
	c := q.pop.Census()
	c.Quarantined = len(q.held)
	return c
}

func (q *Quarantine) Groups() []Group {
	return []Group{
		{Name: "arena", Counts: agent.Census(q.pop.Agents())},
		{Name: "quarantine", Counts: agent.Census(q.held)},
	}
}

// Held returns the agents currently in quarantine.
func (q *Quarantine) Held() []*agent.Agent { return q.held }

// Detected and Released count agents moved in and out of quarantine.
func (q *Quarantine) Detected() int { return q.detected }
func (q *Quarantine) Released() int { return q.released }
