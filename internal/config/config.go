package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/population"
	"github.com/san-kum/episim/internal/scenario"
)

const (
	DefaultScenario    = "basic"
	DefaultDt          = 0.0001
	DefaultSteps       = 2000
	DefaultSize        = 50
	DefaultTemperature = 10000.0
	DefaultProbability = 1.0

	MinInfectionRadius = 2.0
	MaxInfectionRadius = 10.0
	MaxCohortRadius    = 7.0
	MaxSize            = 100
	MaxDetectionRate   = 100.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario        string           `yaml:"scenario"`
	Mode            string           `yaml:"mode"`
	Renormalization string           `yaml:"renormalization"`
	Dt              float64          `yaml:"dt"`
	Steps           int              `yaml:"steps"`
	Seed            int64            `yaml:"seed"`
	Workers         int              `yaml:"workers"`
	Population      PopulationConfig `yaml:"population"`
	Groups          GroupsConfig     `yaml:"groups"`
	Cities          CitiesConfig     `yaml:"cities"`
	Quarantine      QuarantineConfig `yaml:"quarantine"`
}

type PopulationConfig struct {
	Size                 int     `yaml:"size"`
	Temperature          float64 `yaml:"temperature"`
	InfectionProbability float64 `yaml:"infection_probability"`
	InfectionRadius      float64 `yaml:"infection_radius"`
	MinDistance          float64 `yaml:"min_distance"`
	WorldLimit           float64 `yaml:"world_limit"`
	RecoveryTicks        int64   `yaml:"recovery_ticks"`
}

type GroupsConfig struct {
	Vulnerable int `yaml:"vulnerable"`
	Masked     int `yaml:"masked"`
}

type CitiesConfig struct {
	Count             int `yaml:"count"`
	MigrationInterval int `yaml:"migration_interval"`
}

type QuarantineConfig struct {
	DetectionRate float64 `yaml:"detection_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:        DefaultScenario,
		Mode:            integrators.Potential.String(),
		Renormalization: integrators.Incremental.String(),
		Dt:              DefaultDt,
		Steps:           DefaultSteps,
		Workers:         1,
		Population: PopulationConfig{
			Size:                 DefaultSize,
			Temperature:          DefaultTemperature,
			InfectionProbability: DefaultProbability,
			InfectionRadius:      population.DefaultInfectionRadius,
			MinDistance:          population.DefaultMinDistance,
			WorldLimit:           agent.DefaultWorldLimit,
			RecoveryTicks:        agent.DefaultRecoveryTicks,
		},
		Cities: CitiesConfig{
			Count:             scenario.DefaultCities,
			MigrationInterval: scenario.DefaultMigrationInterval,
		},
		Quarantine: QuarantineConfig{
			DetectionRate: scenario.DefaultDetectionRate,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the fields
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("%w: %s = %v %s", ErrInvalid, field, value, reason)
}

func (c *Config) Validate() error {
	p := c.Population
	switch {
	case !scenario.Known(c.Scenario):
		return fmt.Errorf("%w: %s", scenario.ErrUnknown, c.Scenario)
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return invalid("dt", c.Dt, "must be positive")
	case c.Steps < 0:
		return invalid("steps", c.Steps, "must not be negative")
	case c.Workers < 0:
		return invalid("workers", c.Workers, "must not be negative")
	case math.IsNaN(p.InfectionProbability) || p.InfectionProbability < 0 || p.InfectionProbability > 1:
		return invalid("infection_probability", p.InfectionProbability, "must lie in [0, 1]")
	case !(p.InfectionRadius >= MinInfectionRadius && p.InfectionRadius <= MaxInfectionRadius):
		return invalid("infection_radius", p.InfectionRadius, fmt.Sprintf("must lie in [%g, %g]", MinInfectionRadius, MaxInfectionRadius))
	case c.Scenario == "mask_vulnerable" && p.InfectionRadius > MaxCohortRadius:
		return invalid("infection_radius", p.InfectionRadius, fmt.Sprintf("must not exceed %g with cohorts", MaxCohortRadius))
	case p.Size < 0 || p.Size > MaxSize:
		return invalid("size", p.Size, fmt.Sprintf("must lie in [0, %d]", MaxSize))
	case math.IsNaN(p.Temperature) || p.Temperature < 0:
		return invalid("temperature", p.Temperature, "must not be negative")
	case !(p.MinDistance > 0):
		return invalid("min_distance", p.MinDistance, "must be positive")
	case !(p.WorldLimit > 2*p.MinDistance) || math.IsInf(p.WorldLimit, 0):
		return invalid("world_limit", p.WorldLimit, "must exceed twice min_distance")
	case p.RecoveryTicks < 0:
		return invalid("recovery_ticks", p.RecoveryTicks, "must not be negative")
	case c.Groups.Vulnerable < 0 || c.Groups.Masked < 0:
		return invalid("groups", c.Groups, "must not be negative")
	case c.Groups.Vulnerable+c.Groups.Masked > p.Size:
		return invalid("groups", c.Groups, fmt.Sprintf("exceed population size %d", p.Size))
	case c.Cities.Count < 2:
		return invalid("cities.count", c.Cities.Count, "must be at least 2")
	case c.Cities.MigrationInterval < 0:
		return invalid("cities.migration_interval", c.Cities.MigrationInterval, "must not be negative")
	case math.IsNaN(c.Quarantine.DetectionRate) || c.Quarantine.DetectionRate < 0 || c.Quarantine.DetectionRate > MaxDetectionRate:
		return invalid("quarantine.detection_rate", c.Quarantine.DetectionRate, fmt.Sprintf("must lie in [0, %g]", MaxDetectionRate))
	}
	if _, err := integrators.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := integrators.ParseRenormalization(c.Renormalization); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Options validates c and converts it into scenario options.
func (c *Config) Options() (scenario.Options, error) {
	if err := c.Validate(); err != nil {
		return scenario.Options{}, err
	}
	mode, _ := integrators.ParseMode(c.Mode)
	renorm, _ := integrators.ParseRenormalization(c.Renormalization)

	p := c.Population
	return scenario.Options{
		Population: population.Config{
			Size:                 p.Size,
			Temperature:          p.Temperature,
			InfectionProbability: p.InfectionProbability,
			InfectionRadius:      p.InfectionRadius,
			MinDistance:          p.MinDistance,
			WorldLimit:           p.WorldLimit,
			RecoveryTicks:        p.RecoveryTicks,
			SeedInfection:        true,
			MaxAttempts:          population.DefaultMaxAttempts,
		},
		Dt:                c.Dt,
		Mode:              mode,
		Renormalization:   renorm,
		Workers:           c.Workers,
		Vulnerable:        c.Groups.Vulnerable,
		Masked:            c.Groups.Masked,
		Cities:            c.Cities.Count,
		MigrationInterval: c.Cities.MigrationInterval,
		DetectionRate:     c.Quarantine.DetectionRate,
	}, nil
}
