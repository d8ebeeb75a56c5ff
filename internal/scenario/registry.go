package scenario

import (
	"fmt"
	"math/rand"
	"sort"
)

// Builder creates a scenario from options, drawing all randomness from rng.
type Builder func(opts Options, rng *rand.Rand) (Scenario, error)

type entry struct {
	description string
	build       Builder
}

type Registry struct {
	scenarios map[string]entry
}

// NewRegistry returns a registry holding the built-in scenarios.
func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]entry)}

	r.Register("basic", "one arena, soft-sphere repulsion", buildBasic)
	r.Register("randomwalk", "one arena, diffusive motion without forces", buildRandomWalk)
	r.Register("cities", "linked arenas exchanging agents", buildCities)
	r.Register("mask_vulnerable", "one arena with masked and vulnerable cohorts", buildCohorts)
	r.Register("quarantine", "one arena, detected infections held apart", buildQuarantine)

	return r
}

// Register adds or replaces a scenario.
func (r *Registry) Register(name, description string, b Builder) {
	r.scenarios[name] = entry{description: description, build: b}
}

func (r *Registry) Build(name string, opts Options, rng *rand.Rand) (Scenario, error) {
	e, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return e.build(opts, rng)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.scenarios[name]
	return ok
}

func (r *Registry) Description(name string) string {
	return r.scenarios[name].description
}

// List returns the scenario names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtin = NewRegistry()

// Build looks name up among the built-in scenarios.
func Build(name string, opts Options, rng *rand.Rand) (Scenario, error) {
	return builtin.Build(name, opts, rng)
}

func Known(name string) bool { return builtin.Has(name) }

func Names() []string { return builtin.List() }

func Describe(name string) string { return builtin.Description(name) }
