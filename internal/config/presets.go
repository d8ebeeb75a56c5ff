package config

import "sort"

func preset(scenario string, modify func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Scenario = scenario
	if modify != nil {
		modify(cfg)
	}
	return cfg
}

// Presets holds the recommended setups per scenario.
var Presets = map[string]map[string]*Config{
	"basic": {
		"recommended": preset("basic", nil),
		"cautious": preset("basic", func(c *Config) {
			c.Population.InfectionProbability = 0.3
		}),
		"crowded": preset("basic", func(c *Config) {
			c.Population.Size = 100
			c.Population.InfectionRadius = 3
		}),
		"slow": preset("basic", func(c *Config) {
			c.Population.Temperature = 1000
		}),
	},
	"randomwalk": {
		"recommended": preset("randomwalk", func(c *Config) {
			c.Mode = "diffusive"
		}),
		"cold": preset("randomwalk", func(c *Config) {
			c.Mode = "diffusive"
			c.Population.Temperature = 2000
		}),
	},
	"cities": {
		"recommended": preset("cities", func(c *Config) {
			c.Population.Size = 15
			c.Population.InfectionRadius = 10
		}),
		"isolated": preset("cities", func(c *Config) {
			c.Population.Size = 15
			c.Population.InfectionRadius = 10
			c.Cities.MigrationInterval = 0
		}),
		"busy": preset("cities", func(c *Config) {
			c.Population.Size = 15
			c.Population.InfectionRadius = 10
			c.Cities.MigrationInterval = 5
		}),
	},
	"mask_vulnerable": {
		"recommended": preset("mask_vulnerable", func(c *Config) {
			c.Population.Size = 60
			c.Population.InfectionProbability = 0.4
			c.Groups = GroupsConfig{Vulnerable: 20, Masked: 20}
		}),
		"all_masked": preset("mask_vulnerable", func(c *Config) {
			c.Population.Size = 60
			c.Population.InfectionProbability = 0.4
			c.Groups = GroupsConfig{Masked: 60}
		}),
	},
	"quarantine": {
		"recommended": preset("quarantine", func(c *Config) {
			c.Quarantine.DetectionRate = 40
		}),
		"strict": preset("quarantine", func(c *Config) {
			c.Quarantine.DetectionRate = 100
		}),
		"lax": preset("quarantine", func(c *Config) {
			c.Quarantine.DetectionRate = 5
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
