package experiment

import (
	"context"
	"math/rand"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/scenario"
	"github.com/san-kum/episim/internal/sim"
)

// Factory builds the configured scenario for any seed.
func Factory(cfg *config.Config) (sim.Factory, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return func(seed int64) (sim.Stepper, error) {
		return scenario.Build(cfg.Scenario, opts, rand.New(rand.NewSource(seed)))
	}, nil
}

// EnsembleMetrics leaves out energy drift, whose target is only known once
// a scenario is built.
func EnsembleMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewPeakInfected(),
		metrics.NewAttackRate(),
		metrics.NewEnergy(),
	}
}

// RunEnsemble runs cfg under runs consecutive seeds starting at cfg.Seed,
// at most limit at a time.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs, limit int) ([]*sim.Result, error) {
	factory, err := Factory(cfg)
	if err != nil {
		return nil, err
	}
	ens := sim.NewEnsemble(factory, EnsembleMetrics, runs, cfg.Seed)
	ens.SetLimit(limit)
	return ens.Run(ctx, SimConfig(cfg))
}
