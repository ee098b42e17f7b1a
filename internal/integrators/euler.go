package integrators

import "github.com/yongdeokkim7/rodsim/internal/engine"

// Euler is the explicit first-order scheme: positions advance on the old
// velocities, velocities on accelerations at the old positions. Cheap
// baseline; its energy drifts on oscillatory systems.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys engine.System, t, dt float64) {
	sys.UpdateAccelerations(t)
	sys.KinematicStep(t, dt)
	sys.DynamicStep(t, dt)
}
