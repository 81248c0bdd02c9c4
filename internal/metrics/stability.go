package metrics

import (
	"math"

	"github.com/san-kum/pendulum/internal/physics"
)

// Stretch tracks the worst rod-length error seen at the end of a frame.
type Stretch struct {
	name  string
	worst float64
}

func NewStretch() *Stretch {
	return &Stretch{name: "max_stretch"}
}

func (s *Stretch) Name() string {
	return s.name
}

func (s *Stretch) Observe(c *physics.Chain, _ int) {
	s.worst = math.Max(s.worst, c.MaxStretch())
}

func (s *Stretch) Value() float64 {
	return s.worst
}

func (s *Stretch) Reset() {
	s.worst = 0
}
