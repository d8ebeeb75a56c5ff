package experiment

import (
	"context"
	"errors"
	"math/rand"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/scenario"
	"github.com/san-kum/episim/internal/sim"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment is one seeded run of a configured scenario.
type Experiment struct {
	cfg        *config.Config
	randSource *rand.Rand
	scenario   scenario.Scenario
	simulator  *sim.Simulator
	history    *metrics.History
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup validates the configuration, builds the scenario and attaches the
// default metrics and a census history.
func (e *Experiment) Setup() error {
	opts, err := e.cfg.Options()
	if err != nil {
		return err
	}
	s, err := scenario.Build(e.cfg.Scenario, opts, e.randSource)
	if err != nil {
		return err
	}

	e.scenario = s
	e.simulator = sim.New()
	for _, m := range DefaultMetrics(s, e.cfg) {
		e.simulator.AddMetric(m)
	}
	e.history = metrics.NewHistory()
	e.simulator.AddObserver(e.history)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	return e.simulator.Run(ctx, e.scenario, SimConfig(e.cfg))
}

// Watch steps the scenario, handing fn the snapshot after every tick,
// until the configured steps have run or fn returns false.
func (e *Experiment) Watch(ctx context.Context, fn func(sim.Snapshot) bool) error {
	if e.simulator == nil {
		return ErrNotSetup
	}
	return e.simulator.RunWithCallback(ctx, e.scenario, SimConfig(e.cfg), fn)
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) Scenario() scenario.Scenario { return e.scenario }

func (e *Experiment) History() *metrics.History { return e.history }

func (e *Experiment) Config() *config.Config { return e.cfg }

func SimConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Steps:         cfg.Steps,
		Dt:            cfg.Dt,
		ValidateState: true,
	}
}

// DefaultMetrics is the metric set for a built scenario. Contacts are
// counted inside the configured infection radius.
func DefaultMetrics(s scenario.Scenario, cfg *config.Config) []sim.Metric {
	return metrics.Default(s.TargetEnergy(), cfg.Population.InfectionRadius)
}
