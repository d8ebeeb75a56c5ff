package scenario

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/physics"
	"github.com/san-kum/episim/internal/population"
	"github.com/san-kum/episim/internal/sim"
)

const (
	DefaultCities            = 3
	DefaultMigrationInterval = 25
	DefaultDetectionRate     = 40.0
)

var ErrUnknown = errors.New("scenario: unknown scenario")

// Scenario is a stepper that can also report its parts.
type Scenario interface {
	sim.Stepper
	Name() string
	// TargetEnergy is the kinetic energy the run is renormalized to,
	// summed over every population.
	TargetEnergy() float64
	Groups() []Group
}

// Group is the census of one named part of a scenario: a city, a cohort,
// the quarantine ward.
type Group struct {
	Name   string
	Counts agent.Counts
}

type Options struct {
	Population      population.Config
	Dt              float64
	Mode            integrators.Mode
	Renormalization integrators.Renormalization
	Workers         int

	Vulnerable int
	Masked     int

	Cities            int
	MigrationInterval int

	DetectionRate float64
}

func DefaultOptions() Options {
	return Options{
		Population:        population.DefaultConfig(),
		Dt:                0.0001,
		Mode:              integrators.Potential,
		Renormalization:   integrators.Incremental,
		Workers:           1,
		Cities:            DefaultCities,
		MigrationInterval: DefaultMigrationInterval,
		DetectionRate:     DefaultDetectionRate,
	}
}

// newPopulation builds one arena of agents and wraps it for ticking. The
// arena is renormalized to the energy it was created with.
func newPopulation(opts Options, mode integrators.Mode, pc population.Config, rng *rand.Rand) (*sim.Population, float64, error) {
	agents, energy, err := population.New(pc, rng)
	if err != nil {
		return nil, 0, err
	}

	cfg := sim.TickConfig{
		Dt:              opts.Dt,
		TargetEnergy:    energy,
		Temperature:     pc.Temperature,
		Mode:            mode,
		Renormalization: opts.Renormalization,
	}
	var popts []sim.Option
	if opts.Workers > 1 {
		popts = append(popts, sim.WithEngine(physics.NewParallelEngine(opts.Workers)))
	}

	pop, err := sim.NewPopulation(agents, cfg, rng, popts...)
	if err != nil {
		return nil, 0, err
	}
	return pop, energy, nil
}

// arena is a single population. It backs the basic and randomwalk
// scenarios and is embedded by the ones that add behaviour on top.
type arena struct {
	name   string
	pop    *sim.Population
	target float64
}

func newArena(name string, opts Options, mode integrators.Mode, rng *rand.Rand) (*arena, error) {
	pop, energy, err := newPopulation(opts, mode, opts.Population, rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &arena{name: name, pop: pop, target: energy}, nil
}

func (a *arena) Name() string           { return a.name }
func (a *arena) Step()                  { a.pop.Step() }
func (a *arena) Census() sim.Counts     { return a.pop.Census() }
func (a *arena) Agents() []*agent.Agent { return a.pop.Agents() }
func (a *arena) TargetEnergy() float64  { return a.target }

func (a *arena) Groups() []Group {
	return []Group{{Name: "arena", Counts: agent.Census(a.pop.Agents())}}
}

func buildBasic(opts Options, rng *rand.Rand) (Scenario, error) {
	return newArena("basic", opts, opts.Mode, rng)
}

func buildRandomWalk(opts Options, rng *rand.Rand) (Scenario, error) {
	return newArena("randomwalk", opts, integrators.Diffusive, rng)
}

func validRate(r float64) bool {
	return !math.IsNaN(r) && !math.IsInf(r, 0) && r >= 0
}
