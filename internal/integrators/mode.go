package integrators

import "fmt"

// Mode selects how agents move.
type Mode int

const (
	// Potential integrates the pairwise repulsion forces.
	Potential Mode = iota
	// Diffusive is a force-free random walk.
	Diffusive
)

func (m Mode) String() string {
	switch m {
	case Potential:
		return "potential"
	case Diffusive:
		return "diffusive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(name string) (Mode, error) {
	switch name {
	case "potential", "":
		return Potential, nil
	case "diffusive", "randomwalk":
		return Diffusive, nil
	default:
		return 0, fmt.Errorf("unknown mode: %s", name)
	}
}

// Renormalization selects how the kinetic energy estimate is built.
type Renormalization int

const (
	// Incremental divides by a running sum over the agents seen so far in
	// the tick, so early agents are scaled against a partial total.
	Incremental Renormalization = iota
	// Global divides every agent by the full tentative total.
	Global
)

func (r Renormalization) String() string {
	switch r {
	case Incremental:
		return "incremental"
	case Global:
		return "global"
	default:
		return fmt.Sprintf("renormalization(%d)", int(r))
	}
}

func ParseRenormalization(name string) (Renormalization, error) {
	switch name {
	case "incremental", "":
		return Incremental, nil
	case "global":
		return Global, nil
	default:
		return 0, fmt.Errorf("unknown renormalization: %s", name)
	}
}
