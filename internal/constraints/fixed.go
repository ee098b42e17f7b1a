// Package constraints provides boundary conditions enforced on systems
// after each integration step.
package constraints

import "github.com/yongdeokkim7/rodsim/internal/engine"

// FixedNode pins one node to its initial position and zeroes its velocity,
// turning a free rod into a cantilever when applied to node 0.
type FixedNode struct {
	Node   int
	target engine.Vec3
	bound  bool
}

func NewFixedNode(node int) *FixedNode {
	return &FixedNode{Node: node}
}

func (c *FixedNode) ConstrainValues(sys engine.System, t float64) {
	body, ok := sys.(engine.Pinnable)
	if !ok {
		return
	}
	// Capture the anchor on first application.
	if !c.bound {
		c.target = body.NodePosition(c.Node)
		c.bound = true
	}
	body.SetNodePosition(c.Node, c.target)
}

func (c *FixedNode) ConstrainRates(sys engine.System, t float64) {
	body, ok := sys.(engine.Pinnable)
	if !ok {
		return
	}
	body.SetNodeVelocity(c.Node, engine.Vec3{})
}
