// Package engine provides core primitives for rod-dynamics simulation.
//
// The package defines the contracts shared by the bodies, integrators and
// the time-stepping driver:
//
//   - [Vec3]: 3-component vector used for node state
//   - [System]: interface for an independently integrable body
//   - [Collection]: ordered, type-gated registry of systems
//   - [Integrator]: numerical stepping interface
//   - [Forcing], [Constraint]: per-step external effects on a body
//
// # Example
//
//	col := engine.NewCollection()
//	rod := models.NewRod(models.DefaultRodParams())
//	_ = col.Append(rod)
//	integ := integrators.NewPositionVerlet()
//	drv := sim.New(col, integ)
//	result, _ := drv.Run(ctx, cfg)
//
// # Thread Safety
//
// Collections are NOT thread-safe. All mutation and stepping is expected
// to happen on a single driver goroutine.
package engine
