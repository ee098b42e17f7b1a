package models

import (
	"fmt"

	"github.com/yongdeokkim7/rodsim/internal/engine"
)

// RodParams describes an elastic rod discretized as a chain of nodes
// connected by damped stretch springs.
type RodParams struct {
	Nodes     int
	Length    float64
	Mass      float64 // total rod mass, lumped per node
	Stiffness float64 // axial stiffness EA
	Damping   float64 // internal dissipation coefficient
	Start     engine.Vec3
	Direction engine.Vec3 // need not be unit length
}

func DefaultRodParams() RodParams {
	return RodParams{
		Nodes:     21,
		Length:    1.0,
		Mass:      1.0,
		Stiffness: 1e3,
		Damping:   0.5,
		Direction: engine.Vec3{1, 0, 0},
	}
}

// Rod is a deformable body advanced node by node. It satisfies the rod-like
// capability and accepts external point loads between steps.
type Rod struct {
	pos        []engine.Vec3
	vel        []engine.Vec3
	acc        []engine.Vec3
	ext        []engine.Vec3 // external load accumulator, cleared each step
	nodeMass   []float64
	restLength float64
	stiffness  float64
	damping    float64
}

func NewRod(p RodParams) *Rod {
	n := p.Nodes
	if n < 2 {
		n = 2
	}
	dir := p.Direction
	if norm := dir.Norm(); norm > 0 {
		dir = dir.Scale(1 / norm)
	} else {
		dir = engine.Vec3{1, 0, 0}
	}

	r := &Rod{
		pos:        make([]engine.Vec3, n),
		vel:        make([]engine.Vec3, n),
		acc:        make([]engine.Vec3, n),
		ext:        make([]engine.Vec3, n),
		nodeMass:   make([]float64, n),
		restLength: p.Length / float64(n-1),
		stiffness:  p.Stiffness,
		damping:    p.Damping,
	}

	spacing := p.Length / float64(n-1)
	for i := 0; i < n; i++ {
		r.pos[i] = p.Start.Add(dir.Scale(float64(i) * spacing))
	}
	// End nodes carry half an element's worth of mass in the lumped model.
	r.nodeMass[0] = 0.5 * p.Mass / float64(n-1)
	r.nodeMass[n-1] = r.nodeMass[0]
	for i := 1; i < n-1; i++ {
		r.nodeMass[i] = p.Mass / float64(n-1)
	}

	return r
}

func (r *Rod) NumNodes() int    { return len(r.pos) }
func (r *Rod) NumElements() int { return len(r.pos) - 1 }

func (r *Rod) KinematicStep(t, dt float64) {
	for i := range r.pos {
		r.pos[i] = r.pos[i].Add(r.vel[i].Scale(dt))
	}
}

func (r *Rod) DynamicStep(t, dt float64) {
	for i := range r.vel {
		r.vel[i] = r.vel[i].Add(r.acc[i].Scale(dt))
	}
}

func (r *Rod) UpdateAccelerations(t float64) {
	n := len(r.pos)
	forces := make([]engine.Vec3, n)
	copy(forces, r.ext)

	for e := 0; e < n-1; e++ {
		d := r.pos[e+1].Sub(r.pos[e])
		length := d.Norm()
		if length == 0 {
			continue
		}
		dir := d.Scale(1 / length)

		stretch := r.stiffness * (length - r.restLength)
		relVel := r.vel[e+1].Sub(r.vel[e]).Dot(dir)
		magnitude := stretch + r.damping*relVel

		f := dir.Scale(magnitude)
		forces[e] = forces[e].Add(f)
		forces[e+1] = forces[e+1].Sub(f)
	}

	for i := 0; i < n; i++ {
		r.acc[i] = forces[i].Scale(1 / r.nodeMass[i])
		r.ext[i] = engine.Vec3{}
	}
}

func (r *Rod) NodeMass(i int) float64 { return r.nodeMass[i] }

func (r *Rod) AddForce(i int, f engine.Vec3) {
	r.ext[i] = r.ext[i].Add(f)
}

func (r *Rod) NodePosition(i int) engine.Vec3 { return r.pos[i] }

func (r *Rod) NodeVelocity(i int) engine.Vec3 { return r.vel[i] }

func (r *Rod) SetNodePosition(i int, p engine.Vec3) { r.pos[i] = p }

func (r *Rod) SetNodeVelocity(i int, v engine.Vec3) { r.vel[i] = v }

func (r *Rod) TipPosition() engine.Vec3 { return r.pos[len(r.pos)-1] }

// Energy returns kinetic plus elastic stretch energy.
func (r *Rod) Energy() float64 {
	total := 0.0
	for i := range r.vel {
		total += 0.5 * r.nodeMass[i] * r.vel[i].Dot(r.vel[i])
	}
	for e := 0; e < len(r.pos)-1; e++ {
		stretch := r.pos[e+1].Sub(r.pos[e]).Norm() - r.restLength
		total += 0.5 * r.stiffness * stretch * stretch
	}
	return total
}

func (r *Rod) String() string {
	return fmt.Sprintf("Rod(nodes=%d, tip=%.3v)", len(r.pos), r.TipPosition())
}
