package agent

import "fmt"

// Status is the health state of an agent. The only legal transitions are
// Susceptible -> Infected -> Recovered.
type Status int

const (
	Susceptible Status = iota
	Infected
	Recovered
)

func (s Status) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) Valid() bool {
	switch s {
	case Susceptible, Infected, Recovered:
		return true
	default:
		return false
	}
}

// ParseStatus accepts the names produced by String.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "susceptible":
		return Susceptible, nil
	case "infected":
		return Infected, nil
	case "recovered":
		return Recovered, nil
	default:
		return 0, fmt.Errorf("agent: unknown status %q", name)
	}
}
