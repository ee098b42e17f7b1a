package integrators

import "github.com/yongdeokkim7/rodsim/internal/engine"

// PositionVerlet is a second-order symplectic scheme: half kinematic step,
// acceleration update, full dynamic step, half kinematic step. It keeps
// energy drift bounded over long runs, which the elastic models need.
type PositionVerlet struct{}

func NewPositionVerlet() *PositionVerlet {
	return &PositionVerlet{}
}

func (v *PositionVerlet) Step(sys engine.System, t, dt float64) {
	half := 0.5 * dt
	sys.KinematicStep(t, half)
	sys.UpdateAccelerations(t + half)
	sys.DynamicStep(t+half, dt)
	sys.KinematicStep(t+half, half)
}
