package forcing

import "github.com/yongdeokkim7/rodsim/internal/engine"

// EndpointForce applies a point load to the last node, ramped linearly from
// zero over RampTime to avoid shock-loading the elastic models.
type EndpointForce struct {
	Force    engine.Vec3
	RampTime float64
}

func NewEndpointForce(force engine.Vec3, rampTime float64) *EndpointForce {
	return &EndpointForce{Force: force, RampTime: rampTime}
}

func (f *EndpointForce) Apply(sys engine.System, t float64) {
	body, ok := sys.(engine.Loadable)
	if !ok {
		return
	}
	factor := 1.0
	if f.RampTime > 0 && t < f.RampTime {
		factor = t / f.RampTime
	}
	body.AddForce(body.NumNodes()-1, f.Force.Scale(factor))
}
