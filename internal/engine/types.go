package engine

import "math"

// Vec3 is a 3-component vector in simulation space.
type Vec3 [3]float64

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v[0] * factor, v[1] * factor, v[2] * factor}
}

func (v Vec3) Dot(other Vec3) float64 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2]
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// System is the contract a body must satisfy to be advanced by a stepper.
// The split into kinematic and dynamic stages lets symplectic schemes
// interleave position and velocity updates.
type System interface {
	// KinematicStep advances positions from current velocities.
	KinematicStep(t, dt float64)
	// DynamicStep advances velocities from current accelerations.
	DynamicStep(t, dt float64)
	// UpdateAccelerations recomputes accelerations from internal and
	// accumulated external loads, then clears the load accumulator.
	UpdateAccelerations(t float64)
}

// RodLike marks slender deformable bodies discretized as a node chain.
type RodLike interface {
	System
	NumNodes() int
	NumElements() int
}

// RigidBodyLike marks bodies integrated as a single rigid frame.
type RigidBodyLike interface {
	System
	Mass() float64
}

// Loadable accepts external point loads between steps.
type Loadable interface {
	NumNodes() int
	NodeMass(i int) float64
	AddForce(i int, f Vec3)
}

// Pinnable allows boundary conditions to overwrite node state directly.
type Pinnable interface {
	NodePosition(i int) Vec3
	SetNodePosition(i int, p Vec3)
	SetNodeVelocity(i int, v Vec3)
}

// Positioned exposes a probe point for recording and rendering.
type Positioned interface {
	TipPosition() Vec3
}

// Energetic exposes total mechanical energy, used by drift metrics.
type Energetic interface {
	Energy() float64
}

// Integrator advances a single system by one timestep.
type Integrator interface {
	Step(sys System, t, dt float64)
}

// Forcing applies an external load to a system once per step, before
// integration.
type Forcing interface {
	Apply(sys System, t float64)
}

// Constraint enforces a boundary condition on a system after integration.
type Constraint interface {
	ConstrainValues(sys System, t float64)
	ConstrainRates(sys System, t float64)
}
