package sim

import "github.com/yongdeokkim7/rodsim/internal/engine"

// Stepper advances a simulation one step at a time, for interactive views
// that interleave stepping with rendering.
type Stepper struct {
	sim   *Simulator
	dt    float64
	t     float64
	steps int
}

func (s *Simulator) NewStepper(cfg Config) (*Stepper, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	s.applyConstraints(0)
	return &Stepper{sim: s, dt: cfg.Dt}, nil
}

// Step advances the collection by one timestep.
func (st *Stepper) Step() {
	st.sim.stepOnce(st.t, st.dt)
	st.t += st.dt
	st.sim.applyConstraints(st.t)
	st.steps++
}

func (st *Stepper) Time() float64 { return st.t }
func (st *Stepper) Steps() int    { return st.steps }

func (st *Stepper) Probes() []engine.Vec3 {
	return st.sim.probes()
}

func (st *Stepper) Collection() *engine.Collection {
	return st.sim.col
}
