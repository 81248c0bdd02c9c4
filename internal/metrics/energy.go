package metrics

import (
	"math"

	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/sim"
)

// Default returns the metrics recorded for every headless run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewKineticPeak(),
		NewStretch(),
	}
}

// Energy is the mean total energy over observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(c *physics.Chain, _ int) {
	e.totalEnergy += c.TotalEnergy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of total energy against the
// first observed state; headless runs observe the initial state before any
// frame is stepped.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(c *physics.Chain, _ int) {
	energy := c.TotalEnergy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// KineticPeak is the highest kinetic energy seen in any frame.
type KineticPeak struct {
	name string
	peak float64
}

func NewKineticPeak() *KineticPeak {
	return &KineticPeak{name: "kinetic_peak"}
}

func (k *KineticPeak) Name() string { return k.name }

func (k *KineticPeak) Observe(c *physics.Chain, _ int) {
	k.peak = math.Max(k.peak, c.KineticEnergy())
}

func (k *KineticPeak) Value() float64 { return k.peak }

func (k *KineticPeak) Reset() { k.peak = 0 }
