package models

import (
	"fmt"

	"github.com/yongdeokkim7/rodsim/internal/engine"
)

// Sphere is a free rigid body with a single translational frame. It is not
// rod-like; admitting one into a collection requires extending the allowed
// types with the rigid-body capability.
type Sphere struct {
	pos    engine.Vec3
	vel    engine.Vec3
	acc    engine.Vec3
	ext    engine.Vec3
	mass   float64
	radius float64
}

func NewSphere(center engine.Vec3, radius, mass float64) *Sphere {
	return &Sphere{pos: center, radius: radius, mass: mass}
}

func (s *Sphere) Mass() float64   { return s.mass }
func (s *Sphere) Radius() float64 { return s.radius }

func (s *Sphere) KinematicStep(t, dt float64) {
	s.pos = s.pos.Add(s.vel.Scale(dt))
}

func (s *Sphere) DynamicStep(t, dt float64) {
	s.vel = s.vel.Add(s.acc.Scale(dt))
}

func (s *Sphere) UpdateAccelerations(t float64) {
	s.acc = s.ext.Scale(1 / s.mass)
	s.ext = engine.Vec3{}
}

func (s *Sphere) NumNodes() int          { return 1 }
func (s *Sphere) NodeMass(i int) float64 { return s.mass }

func (s *Sphere) AddForce(i int, f engine.Vec3) {
	s.ext = s.ext.Add(f)
}

func (s *Sphere) NodePosition(i int) engine.Vec3       { return s.pos }
func (s *Sphere) SetNodePosition(i int, p engine.Vec3) { s.pos = p }
func (s *Sphere) SetNodeVelocity(i int, v engine.Vec3) { s.vel = v }

func (s *Sphere) TipPosition() engine.Vec3 { return s.pos }

func (s *Sphere) Energy() float64 {
	return 0.5 * s.mass * s.vel.Dot(s.vel)
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(r=%.3f, pos=%.3v)", s.radius, s.pos)
}
