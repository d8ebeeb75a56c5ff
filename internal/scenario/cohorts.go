package scenario

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/episim/internal/population"
)

// Cohorts is an arena in which some agents are vulnerable and some wear
// masks.
type Cohorts struct {
	*arena
	cohorts population.Assignment
}

func buildCohorts(opts Options, rng *rand.Rand) (Scenario, error) {
	if opts.Vulnerable < 0 || opts.Masked < 0 {
		return nil, fmt.Errorf("mask_vulnerable: cohort sizes must not be negative")
	}
	if opts.Vulnerable+opts.Masked > opts.Population.Size {
		return nil, fmt.Errorf("mask_vulnerable: %d vulnerable and %d masked exceed %d agents",
			opts.Vulnerable, opts.Masked, opts.Population.Size)
	}

	a, err := newArena("mask_vulnerable", opts, opts.Mode, rng)
	if err != nil {
		return nil, err
	}
	base := opts.Population.InfectionRadius
	vulnerable, err := population.MakeVulnerable(a.Agents(), opts.Vulnerable, base, rng)
	if err != nil {
		return nil, fmt.Errorf("mask_vulnerable: %w", err)
	}
	masked, err := population.WearMask(a.Agents(), opts.Masked, base, rng)
	if err != nil {
		return nil, fmt.Errorf("mask_vulnerable: %w", err)
	}

	cohorts := make(population.Assignment, len(vulnerable)+len(masked))
	cohorts.Add(population.Vulnerable, vulnerable)
	cohorts.Add(population.Masked, masked)
	return &Cohorts{arena: a, cohorts: cohorts}, nil
}

func (c *Cohorts) Groups() []Group {
	byCohort := c.cohorts.Census(c.Agents())
	groups := make([]Group, 0, len(byCohort))
	for _, cohort := range []population.Cohort{population.Standard, population.Masked, population.Vulnerable} {
		groups = append(groups, Group{Name: cohort.String(), Counts: byCohort[cohort]})
	}
	return groups
}
