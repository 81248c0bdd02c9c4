package physics

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/san-kum/pendulum/internal/dynamo"
)

// DefaultGravity matches the scale of screen-pixel lengths.
const DefaultGravity = 0.1

// Down is the rod direction used when an arm sits on top of its pivot.
var Down = dynamo.V(0, 1)

// Chain is the whole simulation state: an anchor and the arms hanging from it
// in order. Arms[0] hangs from Anchor, Arms[i] hangs from Arms[i-1].
type Chain struct {
	Anchor  dynamo.Vec2
	Gravity float64
	Arms    []Arm
}

func NewChain(anchor dynamo.Vec2, gravity float64) *Chain {
	return &Chain{
		Anchor:  anchor,
		Gravity: gravity,
		Arms:    make([]Arm, 0, 8),
	}
}

func (c *Chain) Len() int { return len(c.Arms) }

// pivot returns the joint arm i hangs from.
func (c *Chain) pivot(i int) dynamo.Vec2 {
	if i == 0 {
		return c.Anchor
	}
	return c.Arms[i-1].Pos
}

// End returns the free end of the chain, or the anchor when it is empty.
func (c *Chain) End() dynamo.Vec2 {
	if len(c.Arms) == 0 {
		return c.Anchor
	}
	return c.Arms[len(c.Arms)-1].Pos
}

// Step advances every arm once, from the anchor outward.
//
// Each arm takes an Euler position step, is snapped back onto its rod, picks
// up gravity, and hands the rod-parallel part of its momentum to the arm
// above it. The first arm's share goes into the anchor and is lost.
func (c *Chain) Step(dt float64) {
	last := c.Anchor
	for i := range c.Arms {
		arm := c.Arms[i]

		arm.Pos = arm.Pos.Add(arm.Vel.Scale(dt))
		dir, ok := arm.Pos.Sub(last).Normalized()
		if !ok {
			dir = Down
		}
		arm.Pos = last.Add(dir.Scale(arm.Length))

		arm.Vel.Y += c.Gravity * dt
		impulse := dir.Scale(arm.Vel.Dot(dir) * arm.Mass * dt)
		arm.Vel = arm.Vel.Sub(impulse.Scale(1 / arm.Mass))

		c.Arms[i] = arm
		last = arm.Pos

		if i > 0 {
			prev := c.Arms[i-1]
			prev.Vel = prev.Vel.Add(impulse.Scale(1 / prev.Mass))
			c.Arms[i-1] = prev
		}
	}
}

// AddArm appends a default arm at a random angle in [0, π) below the chain end.
func (c *Chain) AddArm(rng *rand.Rand) Arm {
	return c.AddArmAt(rng.Float64() * math.Pi)
}

func (c *Chain) AddArmAt(angle float64) Arm {
	arm := NewArm(c.End(), angle)
	c.Arms = append(c.Arms, arm)
	return arm
}

// RemoveArm deletes arm i, keeping the order of the rest.
// It reports false when i is out of range.
func (c *Chain) RemoveArm(i int) bool {
	if i < 0 || i >= len(c.Arms) {
		return false
	}
	c.Arms = slices.Delete(c.Arms, i, i+1)
	return true
}

func (c *Chain) checkIndex(i int) error {
	if i < 0 || i >= len(c.Arms) {
		return fmt.Errorf("%w: arm index %d of %d", dynamo.ErrParameterBounds, i, len(c.Arms))
	}
	return nil
}

func (c *Chain) SetLength(i int, v float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if !(v > 0) {
		return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, v)
	}
	c.Arms[i].Length = v
	return nil
}

func (c *Chain) SetMass(i int, v float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if !(v > 0) {
		return fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrParameterBounds, v)
	}
	c.Arms[i].Mass = v
	return nil
}

func (c *Chain) SetDrag(i int, v float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if v < 0 || math.IsNaN(v) {
		return fmt.Errorf("%w: drag must not be negative, got %g", dynamo.ErrParameterBounds, v)
	}
	c.Arms[i].Drag = v
	return nil
}

func (c *Chain) KineticEnergy() float64 {
	sum := 0.0
	for _, a := range c.Arms {
		sum += a.KineticEnergy()
	}
	return sum
}

func (c *Chain) PotentialEnergy() float64 {
	sum := 0.0
	for _, a := range c.Arms {
		sum += a.PotentialEnergy(c.Gravity)
	}
	return sum
}

func (c *Chain) TotalEnergy() float64 {
	return c.KineticEnergy() + c.PotentialEnergy()
}

// MaxStretch is the largest deviation of any rod from its nominal length.
func (c *Chain) MaxStretch() float64 {
	worst := 0.0
	for i, a := range c.Arms {
		d := math.Abs(a.Pos.Dist(c.pivot(i)) - a.Length)
		worst = math.Max(worst, d)
	}
	return worst
}

func (c *Chain) IsValid() bool {
	for _, a := range c.Arms {
		if !a.IsValid() {
			return false
		}
	}
	return true
}

// Positions returns a copy of the joint positions, anchor excluded.
func (c *Chain) Positions() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(c.Arms))
	for i, a := range c.Arms {
		out[i] = a.Pos
	}
	return out
}

func (c *Chain) Clone() *Chain {
	return &Chain{
		Anchor:  c.Anchor,
		Gravity: c.Gravity,
		Arms:    slices.Clone(c.Arms),
	}
}
