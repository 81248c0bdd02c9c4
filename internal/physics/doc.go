// Package physics holds the pendulum chain and its per-sub-step update.
//
// The chain is not a constraint solver. Every [Chain.Step] integrates each
// arm with an explicit Euler step, projects it back onto its rod and moves a
// dt-scaled share of the rod-parallel momentum to the arm above. Energy is
// not conserved; [Chain.TotalEnergy] exists to watch it drift:
//
//	c := physics.NewChain(dynamo.V(400, 0), physics.DefaultGravity)
//	c.AddArmAt(0)
//	for i := 0; i < 100; i++ {
//	    c.Step(0.01)
//	}
//	fmt.Println(c.TotalEnergy())
package physics
