package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/episim/internal/agent"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, st Stepper, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		History: make([]Counts, 0, cfg.Steps+1),
		Times:   make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.record(result, st, 0, cfg.Dt)

	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, st)
			return result, ctx.Err()
		default:
		}

		st.Step()
		result.StepsTaken++

		if cfg.ValidateState {
			if err := validateAgents(st.Agents()); err != nil {
				result.Errors = append(result.Errors, &StepError{Tick: i, Wrapped: err})
				break
			}
		}

		s.record(result, st, i, cfg.Dt)
	}

	s.finish(result, st)
	return result, nil
}

func (s *Simulator) record(result *Result, st Stepper, tick int, dt float64) {
	snap := Snapshot{
		Tick:   tick,
		Time:   float64(tick) * dt,
		Counts: st.Census(),
		Agents: st.Agents(),
	}
	result.History = append(result.History, snap.Counts)
	result.Times = append(result.Times, snap.Time)

	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, obs := range s.observers {
		obs.OnStep(snap)
	}
}

func (s *Simulator) finish(result *Result, st Stepper) {
	result.Final = st.Census()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	return nil
}

func validateAgents(agents []*agent.Agent) error {
	for _, a := range agents {
		if !a.Position().IsValid() || !a.Velocity().IsValid() {
			return ErrUnstable
		}
	}
	return nil
}

// RunWithCallback steps until cfg.Steps ticks have run or callback returns
// false. The callback sees the snapshot after every tick.
func (s *Simulator) RunWithCallback(ctx context.Context, st Stepper, cfg Config, callback func(Snapshot) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		st.Step()

		if cfg.ValidateState {
			if err := validateAgents(st.Agents()); err != nil {
				return &StepError{Tick: i, Wrapped: err}
			}
		}

		snap := Snapshot{Tick: i, Time: float64(i) * cfg.Dt, Counts: st.Census(), Agents: st.Agents()}
		if !callback(snap) {
			return nil
		}
	}

	return nil
}
