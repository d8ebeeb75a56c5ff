package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/experiment"
	"github.com/san-kum/episim/internal/sim"
)

var ErrEmptyBatch = errors.New("automation: batch has no runs")

// Batch is a scripted list of runs.
type Batch struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []BatchRun `yaml:"runs"`
}

// BatchRun is one entry of a batch. Zero steps and seed keep the values of
// the preset or the defaults.
type BatchRun struct {
	Name      string             `yaml:"name"`
	Scenario  string             `yaml:"scenario"`
	Preset    string             `yaml:"preset"`
	Steps     int                `yaml:"steps"`
	Seed      int64              `yaml:"seed"`
	Overrides map[string]float64 `yaml:"overrides"`
}

// Summary is the outcome of one run.
type Summary struct {
	Name         string
	Scenario     string
	Seed         int64
	Steps        int
	Final        sim.Counts
	PeakInfected float64
	AttackRate   float64
	Metrics      map[string]float64
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	if len(batch.Runs) == 0 {
		return nil, ErrEmptyBatch
	}

	return &batch, nil
}

// Config resolves the run into a full configuration: preset or defaults,
// then the explicit fields, then the overrides.
func (r BatchRun) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = r.Scenario
	if r.Preset != "" {
		cfg = config.GetPreset(r.Scenario, r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", r.Preset, config.ListPresets(r.Scenario))
		}
	}
	if r.Steps != 0 {
		cfg.Steps = r.Steps
	}
	if r.Seed != 0 {
		cfg.Seed = r.Seed
	}
	if err := cfg.Apply(r.Overrides); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// RunBatch executes the runs in order, writing one progress line per run
// to out. On error it returns the summaries completed so far.
func RunBatch(ctx context.Context, batch *Batch, out io.Writer) ([]Summary, error) {
	if out == nil {
		out = io.Discard
	}
	summaries := make([]Summary, 0, len(batch.Runs))

	for i, run := range batch.Runs {
		name := run.Name
		if name == "" {
			name = run.Scenario
		}
		fmt.Fprintf(out, "Running run %d/%d: %s\n", i+1, len(batch.Runs), name)

		cfg, err := run.Config()
		if err != nil {
			return summaries, fmt.Errorf("run %d: %w", i+1, err)
		}

		s, err := runOne(ctx, name, cfg)
		if err != nil {
			return summaries, fmt.Errorf("run %d: %w", i+1, err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

func runOne(ctx context.Context, name string, cfg *config.Config) (Summary, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return Summary{}, fmt.Errorf("setup: %w", err)
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(res.Errors) > 0 {
		return Summary{}, res.Errors[0]
	}
	return Summary{
		Name:         name,
		Scenario:     cfg.Scenario,
		Seed:         cfg.Seed,
		Steps:        res.StepsTaken,
		Final:        res.Final,
		PeakInfected: res.Metrics["peak_infected"],
		AttackRate:   res.Metrics["attack_rate"],
		Metrics:      res.Metrics,
	}, nil
}

// ParameterSweep varies one numeric parameter of a base configuration over
// Points evenly spaced values in [Min, Max].
type ParameterSweep struct {
	Base   *config.Config
	Param  string
	Min    float64
	Max    float64
	Points int

	// Limit bounds concurrent runs; zero means one per CPU.
	Limit int
}

// SweepResult holds the outcome at one parameter value.
type SweepResult struct {
	Value        float64
	PeakInfected float64
	AttackRate   float64
	Final        sim.Counts
}

// Values returns the parameter values the sweep visits.
func (s *ParameterSweep) Values() []float64 {
	if s.Points <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Points-1)
	values := make([]float64, s.Points)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	return values
}

// RunSweep runs every point concurrently under the base seed and returns
// the results sorted by value.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.Points < 1 {
		return nil, fmt.Errorf("sweep: need at least one point, got %d", sweep.Points)
	}
	if sweep.Min > sweep.Max {
		return nil, fmt.Errorf("sweep: min %g exceeds max %g", sweep.Min, sweep.Max)
	}

	values := sweep.Values()
	configs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep: %s=%g: %w", sweep.Param, v, err)
		}
		configs[i] = cfg
	}

	limit := sweep.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]SweepResult, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range configs {
		idx := i
		g.Go(func() error {
			s, err := runOne(ctx, sweep.Param, configs[idx])
			if err != nil {
				return fmt.Errorf("sweep: %s=%g: %w", sweep.Param, values[idx], err)
			}
			results[idx] = SweepResult{
				Value:        values[idx],
				PeakInfected: s.PeakInfected,
				AttackRate:   s.AttackRate,
				Final:        s.Final,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Value < results[j].Value })
	return results, nil
}

// EnsembleStats summarises one metric across ensemble runs.
type EnsembleStats struct {
	Metric string
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats computes per-metric statistics, in metric name order.
func Stats(results []*sim.Result) []EnsembleStats {
	values := make(map[string][]float64)
	for _, r := range results {
		if r == nil {
			continue
		}
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]EnsembleStats, 0, len(names))
	for _, name := range names {
		stats = append(stats, summarise(name, values[name]))
	}
	return stats
}

func summarise(name string, vs []float64) EnsembleStats {
	st := EnsembleStats{Metric: name, Runs: len(vs), Min: vs[0], Max: vs[0]}
	sum := 0.0
	for _, v := range vs {
		sum += v
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Mean = sum / float64(len(vs))

	if len(vs) > 1 {
		ss := 0.0
		for _, v := range vs {
			d := v - st.Mean
			ss += d * d
		}
		st.StdDev = math.Sqrt(ss / float64(len(vs)-1))
	}
	return st
}
