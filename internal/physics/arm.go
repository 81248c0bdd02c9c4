package physics

import (
	"math"

	"github.com/san-kum/pendulum/internal/dynamo"
)

// Defaults for a freshly added arm.
const (
	DefaultLength = 50.0
	DefaultMass   = 25.0
	DefaultDrag   = 0.0
)

// Arm is one rod of the chain with a point mass at its far end.
// Drag is carried for editing but does not enter the integration.
type Arm struct {
	Length float64
	Mass   float64
	Drag   float64

	Pos dynamo.Vec2
	Vel dynamo.Vec2
}

// NewArm places a default arm at angle radians from root, at rest.
// Angles are measured in screen space, so (0, π) points below root.
func NewArm(root dynamo.Vec2, angle float64) Arm {
	dir := dynamo.V(math.Cos(angle), math.Sin(angle))
	return Arm{
		Length: DefaultLength,
		Mass:   DefaultMass,
		Drag:   DefaultDrag,
		Pos:    root.Add(dir.Scale(DefaultLength)),
	}
}

func (a Arm) KineticEnergy() float64 {
	return 0.5 * a.Mass * a.Vel.LenSq()
}

// PotentialEnergy uses screen coordinates: y grows downward, hence the sign.
func (a Arm) PotentialEnergy(gravity float64) float64 {
	return -a.Pos.Y * a.Mass * gravity
}

func (a Arm) IsValid() bool {
	return a.Pos.IsValid() && a.Vel.IsValid()
}
