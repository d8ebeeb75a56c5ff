package population

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/agent"
)

// Cohort groups agents by how their transmission parameters were shaped.
type Cohort int

const (
	Standard Cohort = iota
	Masked
	Vulnerable
)

func (c Cohort) String() string {
	switch c {
	case Standard:
		return "standard"
	case Masked:
		return "masked"
	case Vulnerable:
		return "vulnerable"
	default:
		return fmt.Sprintf("cohort(%d)", int(c))
	}
}

// Multiplier draws, mean and standard deviation.
const (
	vulnerableMean = 1.9
	maskMean       = 0.45
	cohortSpread   = 0.2
)

// Assignment records the cohort each reshaped agent joined. Agents absent
// from it are Standard.
type Assignment map[*agent.Agent]Cohort

// Add records agents as members of c.
func (as Assignment) Add(c Cohort, agents []*agent.Agent) {
	for _, a := range agents {
		as[a] = c
	}
}

func (as Assignment) Of(a *agent.Agent) Cohort { return as[a] }

// Census splits a status census across the recorded cohorts.
func (as Assignment) Census(agents []*agent.Agent) map[Cohort]agent.Counts {
	groups := make(map[Cohort][]*agent.Agent)
	for _, a := range agents {
		c := as.Of(a)
		groups[c] = append(groups[c], a)
	}
	out := make(map[Cohort]agent.Counts, 3)
	for _, c := range []Cohort{Standard, Masked, Vulnerable} {
		out[c] = agent.Census(groups[c])
	}
	return out
}

// MakeVulnerable widens the infection radius and raises the infection
// probability of count randomly chosen standard agents, returning them.
func MakeVulnerable(agents []*agent.Agent, count int, baseRadius float64, rng Rand) ([]*agent.Agent, error) {
	return reshape(agents, count, baseRadius, vulnerableMean, rng)
}

// WearMask narrows the infection radius and lowers the infection
// probability of count randomly chosen standard agents, returning them.
func WearMask(agents []*agent.Agent, count int, baseRadius float64, rng Rand) ([]*agent.Agent, error) {
	return reshape(agents, count, baseRadius, maskMean, rng)
}

// reshape picks agents still at the base radius and scales them by two
// independent draws from N(mean, cohortSpread). A draw that would leave the
// radius at the base is discarded before the agent is touched.
func reshape(agents []*agent.Agent, count int, baseRadius, mean float64, rng Rand) ([]*agent.Agent, error) {
	if baseRadius <= 0 || math.IsNaN(baseRadius) || math.IsInf(baseRadius, 0) {
		return nil, fmt.Errorf("%w: %f", ErrBaseRadius, baseRadius)
	}

	eligible := 0
	for _, a := range agents {
		if a.InfectionRadius() == baseRadius {
			eligible++
		}
	}
	if count < 0 || count > eligible {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrCohortSize, count, eligible)
	}

	chosen := make([]*agent.Agent, 0, count)
	for len(chosen) < count {
		a := agents[rng.Intn(len(agents))]
		if a.InfectionRadius() != baseRadius {
			continue
		}
		radiusFactor := rng.NormFloat64()*cohortSpread + mean
		probFactor := rng.NormFloat64()*cohortSpread + mean
		if math.Max(baseRadius*radiusFactor, 0) == baseRadius {
			continue
		}
		a.ScaleTransmission(radiusFactor, probFactor)
		chosen = append(chosen, a)
	}
	return chosen, nil
}
