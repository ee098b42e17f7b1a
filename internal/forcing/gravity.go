// Package forcing provides external loads applied to systems once per step,
// before integration.
package forcing

import "github.com/yongdeokkim7/rodsim/internal/engine"

// Gravity applies a uniform acceleration as a per-node load m*g.
type Gravity struct {
	Accel engine.Vec3
}

func NewGravity(accel engine.Vec3) *Gravity {
	return &Gravity{Accel: accel}
}

func (g *Gravity) Apply(sys engine.System, t float64) {
	body, ok := sys.(engine.Loadable)
	if !ok {
		return
	}
	for i := 0; i < body.NumNodes(); i++ {
		body.AddForce(i, g.Accel.Scale(body.NodeMass(i)))
	}
}
