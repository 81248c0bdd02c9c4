package sim

import (
	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

// StepsPerFrame is the number of fixed sub-steps run per rendered frame.
const StepsPerFrame = 100

type Metric interface {
	Name() string
	Observe(c *physics.Chain, frame int)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(c *physics.Chain, frame int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(c *physics.Chain, frame int)

func (f ObserverFunc) OnFrame(c *physics.Chain, frame int) { f(c, frame) }

type Config struct {
	StepsPerFrame int
	Frames        int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		StepsPerFrame: StepsPerFrame,
		Frames:        600,
		ValidateState: true,
	}
}

// Sample is the chain as seen at the end of one frame.
type Sample struct {
	Frame     int
	Time      float64
	Kinetic   float64
	Potential float64
	Total     float64
	Positions []dynamo.Vec2
}

type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	FramesRun int
}

// Series extracts one scalar per sample.
func (r *Result) Series(f func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = f(s)
	}
	return out
}
