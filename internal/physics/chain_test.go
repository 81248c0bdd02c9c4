package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

const subStep = 0.01

func newChain(gravity float64, angles ...float64) *physics.Chain {
	c := physics.NewChain(dynamo.V(0, 0), gravity)
	for _, a := range angles {
		c.AddArmAt(a)
	}
	return c
}

func expectRigid(c *physics.Chain) {
	last := c.Anchor
	for i, arm := range c.Arms {
		Expect(arm.Pos.Dist(last)).To(BeNumerically("~", arm.Length, 1e-6), "arm %d", i)
		last = arm.Pos
	}
}

var _ = Describe("Chain", func() {
	Describe("Step", func() {
		It("leaves a chain at rest untouched without gravity", func() {
			c := newChain(0, 0.3, 1.2, 2.5, 0.1)
			before := c.Positions()

			for i := 0; i < 500; i++ {
				c.Step(subStep)
			}

			for i, p := range c.Positions() {
				Expect(p.X).To(BeNumerically("~", before[i].X, 1e-9))
				Expect(p.Y).To(BeNumerically("~", before[i].Y, 1e-9))
			}
		})

		It("keeps every rod at its length after each step", func() {
			c := newChain(physics.DefaultGravity, 0.1, 0.4, 2.9)
			c.Arms[1].Length = 80
			c.Arms[2].Mass = 3

			for i := 0; i < 1000; i++ {
				c.Step(subStep)
				expectRigid(c)
			}
			Expect(c.MaxStretch()).To(BeNumerically("<", 1e-6))
			Expect(c.IsValid()).To(BeTrue())
		})

		It("swings a horizontal arm downward over one frame", func() {
			c := physics.NewChain(dynamo.V(0, 0), 0.1)
			c.Arms = append(c.Arms, physics.Arm{Length: 50, Mass: 25, Pos: dynamo.V(50, 0)})

			for i := 0; i < 100; i++ {
				c.Step(subStep)
			}

			arm := c.Arms[0]
			Expect(arm.Pos.Y).To(BeNumerically(">", 0))
			Expect(arm.Pos.Len()).To(BeNumerically("~", 50, 1e-3))
		})

		It("hands rod-parallel momentum to the previous arm scaled by mass", func() {
			c := physics.NewChain(dynamo.V(0, 0), 0)
			c.Arms = append(c.Arms,
				physics.Arm{Length: 50, Mass: 50, Pos: dynamo.V(0, 50)},
				physics.Arm{Length: 50, Mass: 25, Pos: dynamo.V(0, 100), Vel: dynamo.V(0, 1)},
			)

			c.Step(subStep)

			Expect(c.Arms[1].Vel.Y).To(BeNumerically("~", 0.99, 1e-12))
			Expect(c.Arms[0].Vel.Y).To(BeNumerically("~", 0.005, 1e-12))
			Expect(c.Arms[1].Pos.Y).To(BeNumerically("~", 100, 1e-12))
		})

		It("drops the first arm's radial share into the anchor", func() {
			c := physics.NewChain(dynamo.V(0, 0), 0)
			c.Arms = append(c.Arms, physics.Arm{Length: 50, Mass: 25, Pos: dynamo.V(0, 50), Vel: dynamo.V(0, 2)})

			c.Step(subStep)

			Expect(c.Arms[0].Vel.Y).To(BeNumerically("~", 1.98, 1e-12))
			Expect(c.Arms[0].Vel.X).To(BeZero())
		})

		It("hangs an arm straight down when it sits on its pivot", func() {
			c := physics.NewChain(dynamo.V(10, 10), 0.1)
			c.Arms = append(c.Arms, physics.Arm{Length: 30, Mass: 5, Pos: dynamo.V(10, 10)})

			c.Step(subStep)

			Expect(c.IsValid()).To(BeTrue())
			Expect(c.Arms[0].Pos.X).To(BeNumerically("~", 10, 1e-12))
			Expect(c.Arms[0].Pos.Y).To(BeNumerically("~", 40, 1e-12))
		})

		It("follows a moved anchor on the next step", func() {
			c := newChain(0, math.Pi/2)
			c.Anchor = dynamo.V(100, 0)

			c.Step(subStep)

			expectRigid(c)
			Expect(c.Arms[0].Pos.X).To(BeNumerically("<", 100))
		})
	})

	Describe("AddArm", func() {
		It("appends one default arm at rest 50 away from the chain end", func() {
			c := newChain(physics.DefaultGravity, 0.7)
			c.Arms[0].Vel = dynamo.V(3, -1)
			end := c.End()
			rng := rand.New(rand.NewSource(7))

			arm := c.AddArm(rng)

			Expect(c.Len()).To(Equal(2))
			Expect(c.Arms[1]).To(Equal(arm))
			Expect(arm.Length).To(Equal(50.0))
			Expect(arm.Mass).To(Equal(25.0))
			Expect(arm.Drag).To(BeZero())
			Expect(arm.Vel).To(Equal(dynamo.Vec2{}))
			Expect(arm.Pos.Dist(end)).To(BeNumerically("~", 50, 1e-9))
			Expect(arm.Pos.Y).To(BeNumerically(">=", end.Y))
		})

		It("hangs the first arm from the anchor", func() {
			c := physics.NewChain(dynamo.V(200, 5), physics.DefaultGravity)
			c.AddArm(rand.New(rand.NewSource(1)))

			Expect(c.Arms[0].Pos.Dist(c.Anchor)).To(BeNumerically("~", 50, 1e-9))
		})
	})

	Describe("RemoveArm", func() {
		It("shrinks the chain by one and keeps the order", func() {
			c := newChain(physics.DefaultGravity, 0.1, 0.2, 0.3, 0.4)
			for i := range c.Arms {
				c.Arms[i].Mass = float64(i + 1)
			}

			Expect(c.RemoveArm(1)).To(BeTrue())

			Expect(c.Len()).To(Equal(3))
			Expect([]float64{c.Arms[0].Mass, c.Arms[1].Mass, c.Arms[2].Mass}).To(Equal([]float64{1, 3, 4}))
		})

		It("ignores out-of-range indices", func() {
			c := newChain(physics.DefaultGravity, 0.1)
			Expect(c.RemoveArm(-1)).To(BeFalse())
			Expect(c.RemoveArm(1)).To(BeFalse())
			Expect(c.Len()).To(Equal(1))
		})
	})

	Describe("parameter edits", func() {
		var c *physics.Chain

		BeforeEach(func() {
			c = newChain(physics.DefaultGravity, 0.5)
		})

		DescribeTable("rejects invalid values",
			func(set func(int, float64) error, v float64) {
				Expect(set(0, v)).To(MatchError(dynamo.ErrParameterBounds))
			},
			Entry("zero length", func(i int, v float64) error { return c.SetLength(i, v) }, 0.0),
			Entry("negative mass", func(i int, v float64) error { return c.SetMass(i, v) }, -1.0),
			Entry("NaN mass", func(i int, v float64) error { return c.SetMass(i, v) }, math.NaN()),
			Entry("negative drag", func(i int, v float64) error { return c.SetDrag(i, v) }, -0.1),
		)

		It("applies valid values", func() {
			Expect(c.SetLength(0, 75)).To(Succeed())
			Expect(c.SetMass(0, 9)).To(Succeed())
			Expect(c.SetDrag(0, 0.2)).To(Succeed())
			Expect(c.Arms[0]).To(And(
				HaveField("Length", 75.0),
				HaveField("Mass", 9.0),
				HaveField("Drag", 0.2),
			))
		})

		It("rejects unknown arms", func() {
			Expect(c.SetLength(3, 10)).To(MatchError(dynamo.ErrParameterBounds))
		})
	})

	Describe("energy", func() {
		It("never reports negative kinetic energy", func() {
			rng := rand.New(rand.NewSource(42))
			for i := 0; i < 200; i++ {
				arm := physics.Arm{
					Mass: rng.Float64()*100 + 0.01,
					Vel:  dynamo.V(rng.NormFloat64()*50, rng.NormFloat64()*50),
				}
				Expect(arm.KineticEnergy()).To(BeNumerically(">=", 0))
			}
		})

		It("computes potential energy with screen-space sign", func() {
			arm := physics.Arm{Mass: 25, Pos: dynamo.V(3, 40)}
			Expect(arm.PotentialEnergy(0.1)).To(BeNumerically("~", -100, 1e-12))
			Expect(math.IsInf(arm.PotentialEnergy(0.1), 0)).To(BeFalse())
		})

		It("sums arm energies over the chain", func() {
			c := physics.NewChain(dynamo.V(0, 0), 0.1)
			c.Arms = append(c.Arms,
				physics.Arm{Length: 50, Mass: 2, Pos: dynamo.V(0, 50), Vel: dynamo.V(3, 4)},
				physics.Arm{Length: 50, Mass: 4, Pos: dynamo.V(0, 100), Vel: dynamo.V(1, 0)},
			)

			Expect(c.KineticEnergy()).To(BeNumerically("~", 25+2, 1e-12))
			Expect(c.PotentialEnergy()).To(BeNumerically("~", -10-40, 1e-12))
			Expect(c.TotalEnergy()).To(BeNumerically("~", -23, 1e-12))
		})
	})

	It("clones without sharing arms", func() {
		c := newChain(physics.DefaultGravity, 0.5)
		cp := c.Clone()
		cp.Arms[0].Mass = 1

		Expect(c.Arms[0].Mass).To(Equal(25.0))
	})
})
