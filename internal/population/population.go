package population

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/agent"
)

const (
	DefaultInfectionRadius = 5.0
	DefaultMinDistance     = 1.5
	DefaultMaxAttempts     = 100000
)

var (
	// ErrPlacement indicates the arena could not fit the requested agents.
	ErrPlacement = errors.New("population: could not place agents without overlap")

	// ErrCohortSize indicates more cohort members than eligible agents.
	ErrCohortSize = errors.New("population: not enough standard agents for cohort")

	// ErrBaseRadius indicates a cohort base radius that is not a positive
	// finite number.
	ErrBaseRadius = errors.New("population: invalid base infection radius")
)

// Rand is the random source used to build a population. *rand.Rand
// satisfies it.
type Rand interface {
	agent.Rand
	Intn(n int) int
}

type Config struct {
	Size                 int
	Temperature          float64
	InfectionProbability float64
	InfectionRadius      float64
	MinDistance          float64
	WorldLimit           float64
	RecoveryTicks        int64
	SeedInfection        bool
	MaxAttempts          int
}

func DefaultConfig() Config {
	return Config{
		Size:                 50,
		Temperature:          10000,
		InfectionProbability: 1,
		InfectionRadius:      DefaultInfectionRadius,
		MinDistance:          DefaultMinDistance,
		WorldLimit:           agent.DefaultWorldLimit,
		RecoveryTicks:        agent.DefaultRecoveryTicks,
		SeedInfection:        true,
		MaxAttempts:          DefaultMaxAttempts,
	}
}

func (c Config) validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("population: size must not be negative, got %d", c.Size)
	case math.IsNaN(c.Temperature) || c.Temperature < 0:
		return fmt.Errorf("population: temperature must not be negative, got %f", c.Temperature)
	case !(c.InfectionRadius >= 0) || math.IsInf(c.InfectionRadius, 1):
		return fmt.Errorf("population: infection radius must be finite and not negative, got %f", c.InfectionRadius)
	case !(c.MinDistance > 0):
		return fmt.Errorf("population: min distance must be positive, got %f", c.MinDistance)
	case !(c.WorldLimit > 2*c.MinDistance):
		return fmt.Errorf("population: world limit %f too small for min distance %f", c.WorldLimit, c.MinDistance)
	case c.RecoveryTicks < 0:
		return fmt.Errorf("population: recovery ticks must not be negative, got %d", c.RecoveryTicks)
	}
	return nil
}

// New builds cfg.Size agents and returns them with their total kinetic
// energy. Probabilities outside [0, 1] are rejected by agent.New.
func New(cfg Config, rng Rand) ([]*agent.Agent, float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, 0, err
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	agents := make([]*agent.Agent, 0, cfg.Size)
	energy := 0.0
	span := cfg.WorldLimit - 2*cfg.MinDistance

	for len(agents) < cfg.Size {
		if attempts == 0 {
			return nil, 0, fmt.Errorf("%w: placed %d of %d", ErrPlacement, len(agents), cfg.Size)
		}
		attempts--

		loc := agent.Vec2{
			X: span*rng.Float64() + cfg.MinDistance,
			Y: span*rng.Float64() + cfg.MinDistance,
		}
		if overlaps(agents, loc, 2*cfg.MinDistance) {
			continue
		}

		a, err := agent.New(agent.Params{
			Position: loc,
			Velocity: agent.Vec2{
				X: rng.NormFloat64() * cfg.Temperature,
				Y: rng.NormFloat64() * cfg.Temperature,
			},
			InfectionProbability: cfg.InfectionProbability,
			Radius:               cfg.MinDistance,
			InfectionRadius:      cfg.InfectionRadius,
			Status:               agent.Susceptible,
			WorldLimit:           cfg.WorldLimit,
		})
		if err != nil {
			return nil, 0, err
		}
		energy += a.Velocity().Norm2()
		agents = append(agents, a)
	}

	if cfg.SeedInfection && len(agents) > 0 {
		InfectRandom(agents, cfg.RecoveryTicks, rng)
	}
	return agents, energy, nil
}

func overlaps(agents []*agent.Agent, loc agent.Vec2, minDist float64) bool {
	for _, a := range agents {
		if a.Position().Dist(loc) < minDist {
			return true
		}
	}
	return false
}

// InfectRandom infects one uniformly chosen agent and returns it.
func InfectRandom(agents []*agent.Agent, ticks int64, rng Rand) *agent.Agent {
	if len(agents) == 0 {
		return nil
	}
	a := agents[rng.Intn(len(agents))]
	a.InfectFor(ticks)
	return a
}
