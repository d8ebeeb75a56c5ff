// Package agent models a single simulated human in a closed square arena.
//
// An [Agent] carries kinematic state (position, velocity and a force
// accumulator), a [Status] on the susceptible/infected/recovered ladder and
// its own transmission parameters. Position and velocity are only changed
// through setters that keep the agent inside the arena:
//
//   - [Reflect] flips velocity components that point further into a wall
//     the agent already touches
//   - [ClampPosition] pulls each axis back into [radius, limit-radius]
//
// [Agent.Update] runs both in that order, then advances the recovery
// countdown.
//
// # Randomness
//
// Nothing in this package owns a random source. [Agent.WillInfect] draws
// from a caller supplied [Rand], so a seeded *rand.Rand makes whole runs
// reproducible.
package agent
