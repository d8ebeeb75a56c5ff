package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "basic" {
		t.Errorf("expected scenario basic, got %s", cfg.Scenario)
	}
	if cfg.Dt != 0.0001 {
		t.Errorf("expected dt 0.0001, got %f", cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`
scenario: quarantine
mode: randomwalk
seed: 42
population:
  size: 30
  infection_probability: 0.5
quarantine:
  detection_rate: 60
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scenario != "quarantine" || cfg.Seed != 42 {
		t.Errorf("unexpected top level: %+v", cfg)
	}
	if cfg.Population.Size != 30 || cfg.Population.InfectionProbability != 0.5 {
		t.Errorf("unexpected population: %+v", cfg.Population)
	}
	if cfg.Population.Temperature != DefaultTemperature {
		t.Errorf("temperature default lost: %f", cfg.Population.Temperature)
	}
	if cfg.Steps != DefaultSteps {
		t.Errorf("steps default lost: %d", cfg.Steps)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Mode != integrators.Diffusive {
		t.Errorf("expected diffusive mode, got %v", opts.Mode)
	}
	if opts.DetectionRate != 60 {
		t.Errorf("expected detection rate 60, got %f", opts.DetectionRate)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("cities", "recommended")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"unknown scenario", func(c *Config) { c.Scenario = "lockdown" }, scenario.ErrUnknown},
		{"zero dt", func(c *Config) { c.Dt = 0 }, ErrInvalid},
		{"negative steps", func(c *Config) { c.Steps = -1 }, ErrInvalid},
		{"probability above one", func(c *Config) { c.Population.InfectionProbability = 1.1 }, ErrInvalid},
		{"radius below range", func(c *Config) { c.Population.InfectionRadius = 1 }, ErrInvalid},
		{"radius above range", func(c *Config) { c.Population.InfectionRadius = 11 }, ErrInvalid},
		{"too many humans", func(c *Config) { c.Population.Size = 101 }, ErrInvalid},
		{"negative temperature", func(c *Config) { c.Population.Temperature = -1 }, ErrInvalid},
		{"cohorts exceed size", func(c *Config) { c.Groups = GroupsConfig{Vulnerable: 30, Masked: 30} }, ErrInvalid},
		{"single city", func(c *Config) { c.Cities.Count = 1 }, ErrInvalid},
		{"detection above range", func(c *Config) { c.Quarantine.DetectionRate = 101 }, ErrInvalid},
		{"bad mode", func(c *Config) { c.Mode = "ballistic" }, ErrInvalid},
		{"bad renormalization", func(c *Config) { c.Renormalization = "none" }, ErrInvalid},
		{"cohort radius", func(c *Config) {
			c.Scenario = "mask_vulnerable"
			c.Population.InfectionRadius = 8
		}, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Apply(map[string]float64{
		"infection_probability": 0.25,
		"size":                  20.6,
		"detection_rate":        12.5,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Population.InfectionProbability != 0.25 {
		t.Errorf("probability = %f", cfg.Population.InfectionProbability)
	}
	if cfg.Population.Size != 21 {
		t.Errorf("size = %d, want 21", cfg.Population.Size)
	}
	if cfg.Quarantine.DetectionRate != 12.5 {
		t.Errorf("detection rate = %f", cfg.Quarantine.DetectionRate)
	}

	if err := cfg.Set("gravity", 1); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown parameter, got %v", err)
	}
	if len(Parameters()) != len(setters) {
		t.Error("Parameters does not list every setter")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mask_vulnerable", "recommended")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Population.InfectionProbability != 0.4 || cfg.Groups.Vulnerable != 20 {
		t.Errorf("unexpected preset: %+v", cfg)
	}

	cfg.Population.Size = 1
	if again := GetPreset("mask_vulnerable", "recommended"); again.Population.Size != 60 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("basic", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "recommended"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for name := range Presets {
		if !scenario.Known(name) {
			t.Errorf("presets for unknown scenario %s", name)
		}
		for _, p := range ListPresets(name) {
			cfg := GetPreset(name, p)
			if cfg.Scenario != name {
				t.Errorf("%s/%s: scenario field is %s", name, p, cfg.Scenario)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", name, p, err)
			}
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}
