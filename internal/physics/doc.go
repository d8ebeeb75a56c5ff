// Package physics computes the pairwise interactions between agents.
//
// Every unordered pair (i, j>i) is visited once per tick:
//
//   - [LennardJones] gives a repulsive force inside the cutoff of
//     [CutoffFactor] agent radii, applied equally and oppositely
//   - the transmission check infects either side whose infection radius
//     covers the pair distance, using the other side's probability
//
// Zero-distance pairs are skipped entirely.
//
// # Parallelism
//
// [NewParallelEngine] splits the repulsion pass across goroutines with
// per-worker force buffers that are summed afterwards. Transmission always
// runs serially in pair order so a seeded random source gives the same
// epidemic regardless of worker count.
package physics
