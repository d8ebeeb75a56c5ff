// Package scenario composes populations into the runnable setups of the
// lab: a single arena, a diffusive arena, linked cities, masked and
// vulnerable cohorts, and an arena with quarantine.
//
// Every scenario is a [sim.Stepper] and is looked up by name through a
// [Registry].
package scenario
