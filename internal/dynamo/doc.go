// Package dynamo provides the shared primitives of the pendulum simulator.
//
//   - [Vec2]: 2D point / vector in screen space (y grows downward)
//   - domain errors returned by configuration and the frame loop
//
// # Thread Safety
//
// Nothing in this module is safe for concurrent use. The simulation and the
// renderer share one goroutine and mutate state within a single frame.
package dynamo
