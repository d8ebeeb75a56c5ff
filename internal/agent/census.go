package agent

// Counts is a status census over a group of agents.
type Counts struct {
	Susceptible int
	Infected    int
	Recovered   int
}

func (c Counts) Total() int { return c.Susceptible + c.Infected + c.Recovered }

// Of is the number of agents holding s.
func (c Counts) Of(s Status) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Infected:
		return c.Infected
	case Recovered:
		return c.Recovered
	default:
		return 0
	}
}

func (c Counts) Add(o Counts) Counts {
	return Counts{
		Susceptible: c.Susceptible + o.Susceptible,
		Infected:    c.Infected + o.Infected,
		Recovered:   c.Recovered + o.Recovered,
	}
}

func Census(agents []*Agent) Counts {
	var c Counts
	for _, a := range agents {
		switch a.status {
		case Susceptible:
			c.Susceptible++
		case Infected:
			c.Infected++
		case Recovered:
			c.Recovered++
		}
	}
	return c
}

// KineticEnergy is the sum of squared speeds, the quantity the integrators
// hold near the target energy.
func KineticEnergy(agents []*Agent) float64 {
	e := 0.0
	for _, a := range agents {
		e += a.velocity.Norm2()
	}
	return e
}
