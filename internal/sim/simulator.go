package sim

import (
	"context"
	"fmt"

	"github.com/yongdeokkim7/rodsim/internal/engine"
	"github.com/yongdeokkim7/rodsim/internal/metrics"
)

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-4,
		Duration:      1.0,
		ValidateState: true,
	}
}

// Observer is notified after every committed step.
type Observer interface {
	OnStep(col *engine.Collection, t float64)
}

type Result struct {
	Times      []float64
	Probes     [][]engine.Vec3 // per step, probe point of each system in order
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type StepError struct {
	Step    int
	Time    float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// Simulator drives a collection through time: each step it applies the
// attached forcings in registration order, synchronizes the collection once,
// steps every system with the integrator, then enforces constraints.
type Simulator struct {
	col         *engine.Collection
	integrator  engine.Integrator
	forcings    map[int][]engine.Forcing
	constraints map[int][]engine.Constraint
	metrics     []metrics.Metric
	observers   []Observer
}

func New(col *engine.Collection, integrator engine.Integrator) *Simulator {
	return &Simulator{
		col:         col,
		integrator:  integrator,
		forcings:    make(map[int][]engine.Forcing),
		constraints: make(map[int][]engine.Constraint),
	}
}

// AddForcing attaches a forcing to the system identified by ref, which may
// be a positional index or the system itself. Attachments are positional:
// attach after the collection layout is final.
func (s *Simulator) AddForcing(ref any, f engine.Forcing) error {
	idx, err := s.col.ResolveIndex(ref)
	if err != nil {
		return err
	}
	if idx < 0 {
		idx += s.col.Len()
	}
	s.forcings[idx] = append(s.forcings[idx], f)
	return nil
}

// AddConstraint attaches a boundary condition to the system identified by
// ref. Constraints bind their anchor at the pre-run state.
func (s *Simulator) AddConstraint(ref any, c engine.Constraint) error {
	idx, err := s.col.ResolveIndex(ref)
	if err != nil {
		return err
	}
	if idx < 0 {
		idx += s.col.Len()
	}
	s.constraints[idx] = append(s.constraints[idx], c)
	return nil
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Probes:  make([][]engine.Vec3, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	// Enforce constraints on the initial state so anchors bind before any
	// motion happens.
	s.applyConstraints(0)

	t := 0.0
	result.Times = append(result.Times, t)
	result.Probes = append(result.Probes, s.probes())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.stepOnce(t, cfg.Dt)
		t += cfg.Dt
		s.applyConstraints(t)

		for _, m := range s.metrics {
			m.Observe(s.col, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.col, t)
		}

		probes := s.probes()
		if cfg.ValidateState && !validProbes(probes) {
			err := StepError{Step: i, Time: t, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.Probes = append(result.Probes, probes)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// stepOnce applies forcings, synchronizes the collection, then integrates
// every system in registration order.
func (s *Simulator) stepOnce(t, dt float64) {
	for j := 0; j < s.col.Len(); j++ {
		fs := s.forcings[j]
		if len(fs) == 0 {
			continue
		}
		sys, err := s.col.At(j)
		if err != nil {
			continue
		}
		for _, f := range fs {
			f.Apply(sys, t)
		}
	}

	s.col.Synchronize(t)

	for j := 0; j < s.col.Len(); j++ {
		sys, err := s.col.At(j)
		if err != nil {
			continue
		}
		s.integrator.Step(sys, t, dt)
	}
}

func (s *Simulator) applyConstraints(t float64) {
	for j := 0; j < s.col.Len(); j++ {
		cs := s.constraints[j]
		if len(cs) == 0 {
			continue
		}
		sys, err := s.col.At(j)
		if err != nil {
			continue
		}
		for _, c := range cs {
			c.ConstrainValues(sys, t)
			c.ConstrainRates(sys, t)
		}
	}
}

func (s *Simulator) probes() []engine.Vec3 {
	probes := make([]engine.Vec3, s.col.Len())
	for j := 0; j < s.col.Len(); j++ {
		sys, err := s.col.At(j)
		if err != nil {
			continue
		}
		if p, ok := sys.(engine.Positioned); ok {
			probes[j] = p.TipPosition()
		}
	}
	return probes
}

func validProbes(probes []engine.Vec3) bool {
	for _, p := range probes {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
