// Package integrators advances agent kinematics by one tick.
//
// Two [Stepper] implementations share one tick protocol with the driver:
// Prepare before the interaction pass, Advance after it.
//
//   - [Leapfrog] (mode potential) moves by x + v·dt + ½·a_prev·dt² and sets
//     v + ½·dt·(a_prev + a_new), then drains a_prev from the accumulator so
//     the next tick starts from exactly this tick's forces
//   - [RandomWalk] (mode diffusive) moves by x + v·dt and kicks the velocity
//     with Gaussian noise scaled by temperature/15
//
// Both then rescale velocities toward the target energy ([Renormalize]),
// cap runaway agents ([CapSpeed]) and hand the result to agent.Update.
package integrators
