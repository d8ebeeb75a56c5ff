package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/automation"
	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/experiment"
	"github.com/san-kum/episim/internal/report"
	"github.com/san-kum/episim/internal/scenario"
	"github.com/san-kum/episim/internal/sim"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	steps       int
	seed        int64
	dt          float64
	mode        string
	renorm      string
	humans      int
	prob        float64
	radius      float64
	temperature float64
	workers     int
	// Progress line interval for run
	every int
	// Watch
	watchEvery int
	until      string
	// Sweep
	param  string
	minVal float64
	maxVal float64
	points int
	limit  int
	// Ensemble
	runs int
	// Scenario for init
	scenarioName string
)

// main registers the episim commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "episim",
		Short:        "agent-based epidemic simulation lab",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&every, "every", 0, "print the census every N ticks (0 disables)")

	watchCmd := &cobra.Command{
		Use:   "watch [scenario]",
		Short: "step a scenario until no agent holds a status",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchSimulation,
	}
	addConfigFlags(watchCmd)
	watchCmd.Flags().IntVar(&watchEvery, "every", 100, "print the census every N ticks (0 disables)")
	watchCmd.Flags().StringVar(&until, "until", "infected", "stop once no agent is in this status (susceptible|infected|recovered)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		Args:  cobra.NoArgs,
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every entry of a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "vary one parameter over a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&param, "param", "infection_probability", "parameter to vary")
	sweepCmd.Flags().Float64Var(&minVal, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&maxVal, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&points, "points", 5, "number of values")
	sweepCmd.Flags().IntVar(&limit, "limit", 0, "concurrent runs (0 means one per CPU)")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run consecutive seeds and summarise the spread",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&limit, "limit", 0, "concurrent runs (0 means one per CPU)")

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset of the scenario given by --scenario")
	initCmd.Flags().StringVar(&scenarioName, "scenario", config.DefaultScenario, "scenario")

	rootCmd.AddCommand(runCmd, watchCmd, scenariosCmd, presetsCmd, batchCmd, sweepCmd, ensembleCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.StringVar(&mode, "mode", "potential", "motion mode (potential|diffusive)")
	f.StringVar(&renorm, "renorm", "incremental", "energy renormalization (incremental|global)")
	f.IntVar(&humans, "humans", config.DefaultSize, "agents per population")
	f.Float64Var(&prob, "prob", config.DefaultProbability, "infection probability")
	f.Float64Var(&radius, "radius", 5, "infection radius")
	f.Float64Var(&temperature, "temperature", config.DefaultTemperature, "temperature")
	f.IntVar(&workers, "workers", 1, "repulsion workers per population")
}

// resolveConfig layers defaults, preset, config file, the scenario argument
// and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scenario))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Scenario = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("renorm") {
		cfg.Renormalization = renorm
	}
	if flags.Changed("humans") {
		cfg.Population.Size = humans
	}
	if flags.Changed("prob") {
		cfg.Population.InfectionProbability = prob
	}
	if flags.Changed("radius") {
		cfg.Population.InfectionRadius = radius
	}
	if flags.Changed("temperature") {
		cfg.Population.Temperature = temperature
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

type progressPrinter struct {
	every int
}

func (p progressPrinter) OnStep(s sim.Snapshot) {
	if s.Tick%p.every == 0 {
		fmt.Println(report.Progress(s))
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}
	if every > 0 {
		exp.Simulator().AddObserver(progressPrinter{every: every})
	}

	ctx, stop := interruptContext()
	defer stop()

	fmt.Printf("running %s simulation (seed %d, %d ticks)...\n", cfg.Scenario, cfg.Seed, cfg.Steps)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Println("interrupted")
	}

	fmt.Println(report.Summary(cfg.Scenario, result, exp.Scenario().Groups(), time.Since(start)))
	fmt.Println(report.Legend())
	return nil
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	status, err := agent.ParseStatus(until)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	fmt.Printf("watching %s simulation (seed %d, up to %d ticks, until no agent is %s)...\n", cfg.Scenario, cfg.Seed, cfg.Steps, status)

	last := sim.Snapshot{Counts: exp.Scenario().Census()}
	err = exp.Watch(ctx, func(s sim.Snapshot) bool {
		last = s
		if watchEvery > 0 && s.Tick%watchEvery == 0 {
			fmt.Println(report.Progress(s))
		}
		return s.Counts.Of(status) > 0
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Println("interrupted")
	}

	fmt.Println(report.Progress(last))
	if last.Counts.Of(status) == 0 {
		fmt.Printf("no agent is %s after %d ticks\n", status, last.Tick)
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tPRESETS")
	for _, name := range scenario.Names() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, scenario.Describe(name), len(config.ListPresets(name)))
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	if batch.Description != "" {
		fmt.Printf("%s: %s\n", batch.Name, batch.Description)
	}
	summaries, err := automation.RunBatch(ctx, batch, os.Stdout)
	if len(summaries) > 0 {
		fmt.Println(report.BatchTable(summaries))
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	sweep := &automation.ParameterSweep{
		Base:   cfg,
		Param:  param,
		Min:    minVal,
		Max:    maxVal,
		Points: points,
		Limit:  limit,
	}
	fmt.Printf("sweeping %s over [%g, %g] in %d points (%s, seed %d)...\n",
		param, minVal, maxVal, points, cfg.Scenario, cfg.Seed)

	results, err := automation.RunSweep(ctx, sweep)
	if err != nil {
		return err
	}
	fmt.Println(report.SweepTable(param, results))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	ctx, stop := interruptContext()
	defer stop()

	fmt.Printf("running %d seeds of %s from seed %d...\n", runs, cfg.Scenario, cfg.Seed)
	start := time.Now()

	results, err := experiment.RunEnsemble(ctx, cfg, runs, limit)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Println(report.EnsembleTable(automation.Stats(results)))
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenarioName
	if preset != "" {
		cfg = config.GetPreset(scenarioName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
