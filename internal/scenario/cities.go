package scenario

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/sim"
)

// Cities is a set of arenas linked by migration. Only the first city starts
// with an infection. Every interval ticks each city in turn sends two
// distinct random agents away, one to each of the next two cities.
type Cities struct {
	cities     []*sim.Population
	interval   int
	rng        *rand.Rand
	ticks      int
	target     float64
	migrations int
}

func buildCities(opts Options, rng *rand.Rand) (Scenario, error) {
	if opts.Cities < 2 {
		return nil, fmt.Errorf("cities: need at least 2 cities, got %d", opts.Cities)
	}
	if opts.MigrationInterval < 0 {
		return nil, fmt.Errorf("cities: migration interval must not be negative, got %d", opts.MigrationInterval)
	}

	c := &Cities{
		cities:   make([]*sim.Population, opts.Cities),
		interval: opts.MigrationInterval,
		rng:      rng,
	}
	for i := range c.cities {
		pc := opts.Population
		pc.SeedInfection = pc.SeedInfection && i == 0
		pop, energy, err := newPopulation(opts, opts.Mode, pc, rng)
		if err != nil {
			return nil, fmt.Errorf("cities: city %d: %w", i+1, err)
		}
		c.cities[i] = pop
		c.target += energy
	}
	return c, nil
}

func (c *Cities) Name() string { return "cities" }

func (c *Cities) Step() {
	for _, city := range c.cities {
		city.Step()
	}
	c.ticks++
	if c.interval > 0 && c.ticks%c.interval == 0 {
		c.migrate()
	}
}

func (c *Cities) migrate() {
	n := len(c.cities)
	for i, src := range c.cities {
		if src.Len() < 2 {
			continue
		}
		first := c.rng.Intn(src.Len())
		second := c.rng.Intn(src.Len() - 1)
		if second >= first {
			second++
		}
		a, b := src.Agents()[first], src.Agents()[second]
		src.Remove(a)
		src.Remove(b)

		next, other := (i+1)%n, (i+2)%n
		if other == i {
			other = next
		}
		c.cities[next].Add(a)
		c.cities[other].Add(b)
		c.migrations += 2
	}
}

func (c *Cities) Census() sim.Counts {
	var total sim.Counts
	for _, city := range c.cities {
		total.Counts = total.Counts.Add(agent.Census(city.Agents()))
	}
	return total
}

// Agents returns a fresh slice holding every city's agents in city order.
func (c *Cities) Agents() []*agent.Agent {
	n := 0
	for _, city := range c.cities {
		n += city.Len()
	}
	out := make([]*agent.Agent, 0, n)
	for _, city := range c.cities {
		out = append(out, city.Agents()...)
	}
	return out
}

func (c *Cities) TargetEnergy() float64 { return c.target }

func (c *Cities) Groups() []Group {
	groups := make([]Group, len(c.cities))
	for i, city := range c.cities {
		groups[i] = Group{
			Name:   fmt.Sprintf("city %d", i+1),
			Counts: agent.Census(city.Agents()),
		}
	}
	return groups
}

// City returns the population of the i-th city.
func (c *Cities) City(i int) *sim.Population { return c.cities[i] }

// Migrations is the number of agents moved so far.
func (c *Cities) Migrations() int { return c.migrations }
