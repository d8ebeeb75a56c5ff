package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/physics"
)

// TickConfig holds the fixed inputs of every tick.
type TickConfig struct {
	Dt              float64
	TargetEnergy    float64
	Temperature     float64
	Mode            integrators.Mode
	Renormalization integrators.Renormalization
}

func (c TickConfig) validate() error {
	switch {
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	case math.IsNaN(c.TargetEnergy) || c.TargetEnergy < 0:
		return fmt.Errorf("%w: target energy must not be negative, got %f", ErrInvalidConfig, c.TargetEnergy)
	case math.IsNaN(c.Temperature) || c.Temperature < 0:
		return fmt.Errorf("%w: temperature must not be negative, got %f", ErrInvalidConfig, c.Temperature)
	}
	return nil
}

func (c TickConfig) params() integrators.Params {
	return integrators.Params{
		Dt:              c.Dt,
		TargetEnergy:    c.TargetEnergy,
		Temperature:     c.Temperature,
		Renormalization: c.Renormalization,
	}
}

// TickReport is what one tick did.
type TickReport struct {
	physics.Stats
	integrators.Report
}

// Tick advances agents by one tick in place. It is the stateless form of
// Population.Tick: the leapfrog history lives in each agent's acceleration,
// so no state needs to survive between calls.
func Tick(agents []*agent.Agent, dt, targetEnergy float64, mode integrators.Mode, temperature float64, rng agent.Rand) error {
	return TickWith(agents, TickConfig{Dt: dt, TargetEnergy: targetEnergy, Temperature: temperature, Mode: mode}, rng)
}

// TickWith is Tick with the full configuration, renormalization included.
func TickWith(agents []*agent.Agent, cfg TickConfig, rng agent.Rand) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if rng == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	stepper, err := integrators.New(cfg.Mode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	tick(agents, physics.NewEngine(), stepper, cfg.params(), rng)
	return nil
}

// tick is the fixed order: interaction pass, then integration, which ends
// in agent.Update and its countdown.
func tick(agents []*agent.Agent, engine *physics.Engine, stepper integrators.Stepper, p integrators.Params, rng agent.Rand) TickReport {
	var rep TickReport
	stepper.Prepare(agents)
	if stepper.UsesForces() {
		rep.Stats = engine.Interact(agents, rng)
	} else {
		rep.Stats = engine.Transmit(agents, rng)
	}
	rep.Report = stepper.Advance(agents, p, rng)
	return rep
}

// Population owns one group of agents for the duration of every tick. It
// is not safe for concurrent use.
type Population struct {
	agents  []*agent.Agent
	cfg     TickConfig
	engine  *physics.Engine
	stepper integrators.Stepper
	rng     agent.Rand
	ticks   int
}

type Option func(*Population)

// WithEngine replaces the default serial interaction engine.
func WithEngine(e *physics.Engine) Option {
	return func(p *Population) { p.engine = e }
}

func NewPopulation(agents []*agent.Agent, cfg TickConfig, rng agent.Rand, opts ...Option) (*Population, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	stepper, err := integrators.New(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	p := &Population{
		agents:  agents,
		cfg:     cfg,
		engine:  physics.NewEngine(),
		stepper: stepper,
		rng:     rng,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Tick advances every agent by one tick.
func (p *Population) Tick() TickReport {
	rep := tick(p.agents, p.engine, p.stepper, p.cfg.params(), p.rng)
	p.ticks++
	return rep
}

func (p *Population) Step() { p.Tick() }

func (p *Population) Census() Counts {
	return Counts{Counts: agent.Census(p.agents)}
}

// Agents returns the live slice. Callers must not modify it while a tick
// is running.
func (p *Population) Agents() []*agent.Agent { return p.agents }

func (p *Population) Len() int { return len(p.agents) }

func (p *Population) Config() TickConfig { return p.cfg }

func (p *Population) Ticks() int { return p.ticks }

// Add moves an agent into the population between ticks.
func (p *Population) Add(a *agent.Agent) {
	p.agents = append(p.agents, a)
}

// RemoveAt takes the agent at index i out of the population, keeping the
// order of the rest.
func (p *Population) RemoveAt(i int) *agent.Agent {
	a := p.agents[i]
	p.agents = append(p.agents[:i], p.agents[i+1:]...)
	return a
}

// Remove takes a out of the population and reports whether it was present.
func (p *Population) Remove(a *agent.Agent) bool {
	for i, b := range p.agents {
		if b == a {
			p.RemoveAt(i)
			return true
		}
	}
	return false
}
