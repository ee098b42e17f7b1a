// Package scenario builds ready-to-run simulations from named setups.
package scenario

import (
	"fmt"
	"sort"

	"github.com/yongdeokkim7/rodsim/internal/config"
	"github.com/yongdeokkim7/rodsim/internal/constraints"
	"github.com/yongdeokkim7/rodsim/internal/engine"
	"github.com/yongdeokkim7/rodsim/internal/forcing"
	"github.com/yongdeokkim7/rodsim/internal/integrators"
	"github.com/yongdeokkim7/rodsim/internal/models"
	"github.com/yongdeokkim7/rodsim/internal/sim"
)

type builder func(cfg *config.Config, integ engine.Integrator) (*sim.Simulator, *engine.Collection, error)

type Registry struct {
	scenarios   map[string]builder
	integrators map[string]func() engine.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]builder),
		integrators: make(map[string]func() engine.Integrator),
	}

	r.scenarios["cantilever"] = buildCantilever
	r.scenarios["two_rods"] = buildTwoRods
	r.scenarios["rod_sphere"] = buildRodSphere

	r.integrators["euler"] = func() engine.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() engine.Integrator { return integrators.NewPositionVerlet() }

	return r
}

// Build assembles the collection, forcings and constraints for the scenario
// named in cfg and returns the driver ready to run.
func (r *Registry) Build(cfg *config.Config) (*sim.Simulator, *engine.Collection, error) {
	build, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}
	newInteg, ok := r.integrators[cfg.Integrator]
	if !ok {
		return nil, nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}
	return build(cfg, newInteg())
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rodParams(cfg *config.Config) models.RodParams {
	return models.RodParams{
		Nodes:     cfg.Rod.Nodes,
		Length:    cfg.Rod.Length,
		Mass:      cfg.Rod.Mass,
		Stiffness: cfg.Rod.Stiffness,
		Damping:   cfg.Rod.Damping,
		Direction: engine.Vec3{1, 0, 0},
	}
}

// buildCantilever: one rod fixed at its first node, sagging under gravity.
func buildCantilever(cfg *config.Config, integ engine.Integrator) (*sim.Simulator, *engine.Collection, error) {
	col := engine.NewCollection()
	rod := models.NewRod(rodParams(cfg))
	if err := col.Append(rod); err != nil {
		return nil, nil, err
	}

	drv := sim.New(col, integ)
	if err := drv.AddConstraint(rod, constraints.NewFixedNode(0)); err != nil {
		return nil, nil, err
	}
	if err := drv.AddForcing(rod, forcing.NewGravity(engine.Vec3{0, cfg.Gravity, 0})); err != nil {
		return nil, nil, err
	}
	return drv, col, nil
}

// buildTwoRods: two parallel cantilevers coupled tip-to-tip by a linear
// spring registered as a synchronize hook, with an optional ramped endpoint
// load on the second rod.
func buildTwoRods(cfg *config.Config, integ engine.Integrator) (*sim.Simulator, *engine.Collection, error) {
	col := engine.NewCollection()

	pa := rodParams(cfg)
	pb := rodParams(cfg)
	pb.Start = engine.Vec3{0, 0, 0.2}

	rodA := models.NewRod(pa)
	rodB := models.NewRod(pb)
	if err := col.Append(rodA); err != nil {
		return nil, nil, err
	}
	if err := col.Append(rodB); err != nil {
		return nil, nil, err
	}

	restSep := rodB.TipPosition().Sub(rodA.TipPosition()).Norm()
	coupling := 0.1 * cfg.Rod.Stiffness
	col.OnSynchronize(func(time float64) {
		d := rodB.TipPosition().Sub(rodA.TipPosition())
		sep := d.Norm()
		if sep == 0 {
			return
		}
		f := d.Scale(coupling * (sep - restSep) / sep)
		rodA.AddForce(rodA.NumNodes()-1, f)
		rodB.AddForce(rodB.NumNodes()-1, f.Scale(-1))
	})

	drv := sim.New(col, integ)
	for _, rod := range []*models.Rod{rodA, rodB} {
		if err := drv.AddConstraint(rod, constraints.NewFixedNode(0)); err != nil {
			return nil, nil, err
		}
		if cfg.Gravity != 0 {
			if err := drv.AddForcing(rod, forcing.NewGravity(engine.Vec3{0, cfg.Gravity, 0})); err != nil {
				return nil, nil, err
			}
		}
	}

	load := engine.Vec3{cfg.Load.ForceX, cfg.Load.ForceY, cfg.Load.ForceZ}
	if load.Norm() > 0 {
		if err := drv.AddForcing(rodB, forcing.NewEndpointForce(load, cfg.Load.RampTime)); err != nil {
			return nil, nil, err
		}
	}
	return drv, col, nil
}

// buildRodSphere: a cantilever plus a falling rigid sphere. The sphere is
// not rod-like, so the collection's allowed types are extended first.
func buildRodSphere(cfg *config.Config, integ engine.Integrator) (*sim.Simulator, *engine.Collection, error) {
	col := engine.NewCollection()
	col.ExtendAllowedTypes(engine.RigidBodyMarker)

	rod := models.NewRod(rodParams(cfg))
	sphere := models.NewSphere(engine.Vec3{cfg.Rod.Length, 1.0, 0}, 0.05, 0.1)
	if err := col.Append(rod); err != nil {
		return nil, nil, err
	}
	if err := col.Append(sphere); err != nil {
		return nil, nil, err
	}

	drv := sim.New(col, integ)
	if err := drv.AddConstraint(rod, constraints.NewFixedNode(0)); err != nil {
		return nil, nil, err
	}
	gravity := forcing.NewGravity(engine.Vec3{0, cfg.Gravity, 0})
	if err := drv.AddForcing(rod, gravity); err != nil {
		return nil, nil, err
	}
	if err := drv.AddForcing(sphere, gravity); err != nil {
		return nil, nil, err
	}
	return drv, col, nil
}
