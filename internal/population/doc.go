// Package population builds the initial set of agents for a run.
//
// [New] places agents by rejection sampling so no two start closer than
// twice the minimum distance, draws Gaussian velocities scaled by the
// temperature and returns the total kinetic energy the integrators hold the
// run to. [MakeVulnerable] and [WearMask] then reshape the transmission
// parameters of randomly chosen agents.
package population
