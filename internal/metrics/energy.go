package metrics

import (
	"math"

	"github.com/yongdeokkim7/rodsim/internal/engine"
)

// Metric observes the whole collection each step and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(col *engine.Collection, t float64)
	Value() float64
	Reset()
}

// TotalEnergy sums the energy of every Energetic member in order.
func TotalEnergy(col *engine.Collection) float64 {
	total := 0.0
	for i := 0; i < col.Len(); i++ {
		sys, err := col.At(i)
		if err != nil {
			continue
		}
		if e, ok := sys.(engine.Energetic); ok {
			total += e.Energy()
		}
	}
	return total
}

// Energy reports the mean total mechanical energy over the run.
type Energy struct {
	sum     float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(col *engine.Collection, t float64) {
	e.sum += TotalEnergy(col)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}

// EnergyDrift reports the maximum relative deviation from the first
// observed total energy. Near zero for a symplectic integrator.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(col *engine.Collection, t float64) {
	energy := TotalEnergy(col)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
