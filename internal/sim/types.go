package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/episim/internal/agent"
)

var (
	// ErrInvalidConfig indicates tick or run parameters outside their domain.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrUnstable indicates an agent reached a non-finite position or velocity.
	ErrUnstable = errors.New("sim: simulation unstable (non-finite agent state)")
)

// Counts is the census of a stepper. Quarantined agents are held outside
// the arena and are not part of the embedded status counts.
type Counts struct {
	agent.Counts
	Quarantined int
}

func (c Counts) Total() int { return c.Counts.Total() + c.Quarantined }

// Of counts quarantined agents as infected.
func (c Counts) Of(s agent.Status) int {
	if s == agent.Infected {
		return c.Counts.Of(s) + c.Quarantined
	}
	return c.Counts.Of(s)
}

// Snapshot is what metrics and observers see after each tick.
type Snapshot struct {
	Tick   int
	Time   float64
	Counts Counts
	Agents []*agent.Agent
}

// Stepper is anything that advances a set of agents one tick at a time: a
// single Population or a scenario composed of several.
type Stepper interface {
	Step()
	Census() Counts
	Agents() []*agent.Agent
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

type Config struct {
	Steps         int
	Dt            float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         2000,
		Dt:            0.0001,
		ValidateState: true,
	}
}

type Result struct {
	History    []Counts
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Final      Counts
	Errors     []error
}

// StepError wraps a failure with the tick it happened on.
type StepError struct {
	Tick    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
