package config

import (
	"fmt"
	"math"
	"sort"
)

// setters maps the numeric parameters that batch overrides and sweeps may
// change by name.
var setters = map[string]func(c *Config, v float64){
	"dt":                    func(c *Config, v float64) { c.Dt = v },
	"steps":                 func(c *Config, v float64) { c.Steps = int(v) },
	"workers":               func(c *Config, v float64) { c.Workers = int(v) },
	"size":                  func(c *Config, v float64) { c.Population.Size = int(v) },
	"temperature":           func(c *Config, v float64) { c.Population.Temperature = v },
	"infection_probability": func(c *Config, v float64) { c.Population.InfectionProbability = v },
	"infection_radius":      func(c *Config, v float64) { c.Population.InfectionRadius = v },
	"min_distance":          func(c *Config, v float64) { c.Population.MinDistance = v },
	"world_limit":           func(c *Config, v float64) { c.Population.WorldLimit = v },
	"recovery_ticks":        func(c *Config, v float64) { c.Population.RecoveryTicks = int64(v) },
	"vulnerable":            func(c *Config, v float64) { c.Groups.Vulnerable = int(v) },
	"masked":                func(c *Config, v float64) { c.Groups.Masked = int(v) },
	"cities":                func(c *Config, v float64) { c.Cities.Count = int(v) },
	"migration_interval":    func(c *Config, v float64) { c.Cities.MigrationInterval = int(v) },
	"detection_rate":        func(c *Config, v float64) { c.Quarantine.DetectionRate = v },
}

// Set changes the named numeric parameter. Integer parameters are rounded.
func (c *Config) Set(name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalid, name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
	}
	set(c, roundIfInt(name, v))
	return nil
}

func roundIfInt(name string, v float64) float64 {
	switch name {
	case "dt", "temperature", "infection_probability", "infection_radius",
		"min_distance", "world_limit", "detection_rate":
		return v
	}
	return math.Round(v)
}

// Apply sets every override in name order.
func (c *Config) Apply(overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Set(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// Parameters lists the names accepted by Set.
func Parameters() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
