package agent

import "math"

const (
	DefaultWorldLimit           = 100.0
	DefaultRadius               = 1.26
	DefaultInfectionRadius      = 20.0
	DefaultInfectionProbability = 0.1

	// DefaultRecoveryTicks is the countdown installed by Infect.
	DefaultRecoveryTicks int64 = 200

	// MaxInfectionProbability caps any probability changed after construction.
	MaxInfectionProbability = 0.99
)

// Rand is the random source consumed by agents and the engines that drive
// them. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Params describes a new agent.
type Params struct {
	Position             Vec2
	Velocity             Vec2
	InfectionProbability float64
	Radius               float64
	InfectionRadius      float64
	Status               Status
	RecoveryCountdown    int64
	WorldLimit           float64
}

func DefaultParams() Params {
	return Params{
		InfectionProbability: DefaultInfectionProbability,
		Radius:               DefaultRadius,
		InfectionRadius:      DefaultInfectionRadius,
		Status:               Susceptible,
		WorldLimit:           DefaultWorldLimit,
	}
}

// Agent is a simulated human. The zero value is not usable; build agents
// with New.
type Agent struct {
	position     Vec2
	velocity     Vec2
	acceleration Vec2

	radius     float64
	worldLimit float64

	infectionRadius      float64
	infectionProbability float64

	status            Status
	recoveryCountdown int64
}

// New validates p and returns the agent. The initial position goes through
// ClampPosition; the initial velocity is taken as given.
func New(p Params) (*Agent, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	a := &Agent{
		velocity:             p.Velocity,
		radius:               p.Radius,
		worldLimit:           p.WorldLimit,
		infectionRadius:      p.InfectionRadius,
		infectionProbability: p.InfectionProbability,
		status:               p.Status,
		recoveryCountdown:    p.RecoveryCountdown,
	}
	a.position, _ = ClampPosition(p.Position, a.radius, a.worldLimit)
	return a, nil
}

func (p Params) validate() error {
	switch {
	case math.IsNaN(p.InfectionProbability) || p.InfectionProbability < 0 || p.InfectionProbability > 1:
		return &ParamError{Field: "infection_probability", Value: p.InfectionProbability, Reason: "must lie in [0, 1]"}
	case !(p.Radius > 0) || math.IsInf(p.Radius, 0):
		return &ParamError{Field: "radius", Value: p.Radius, Reason: "must be positive"}
	case math.IsNaN(p.InfectionRadius) || p.InfectionRadius < 0:
		return &ParamError{Field: "infection_radius", Value: p.InfectionRadius, Reason: "must not be negative"}
	case !(p.WorldLimit > 2*p.Radius) || math.IsInf(p.WorldLimit, 0):
		return &ParamError{Field: "world_limit", Value: p.WorldLimit, Reason: "must exceed twice the radius"}
	case p.RecoveryCountdown < 0:
		return &ParamError{Field: "recovery_countdown", Value: float64(p.RecoveryCountdown), Reason: "must not be negative"}
	case !p.Position.IsValid() || !p.Velocity.IsValid():
		return &ParamError{Field: "kinematics", Value: math.NaN(), Reason: "position and velocity must be finite"}
	case !p.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}

func (a *Agent) Position() Vec2                { return a.position }
func (a *Agent) Velocity() Vec2                { return a.velocity }
func (a *Agent) Acceleration() Vec2            { return a.acceleration }
func (a *Agent) Radius() float64               { return a.radius }
func (a *Agent) WorldLimit() float64           { return a.worldLimit }
func (a *Agent) InfectionRadius() float64      { return a.infectionRadius }
func (a *Agent) InfectionProbability() float64 { return a.infectionProbability }
func (a *Agent) Status() Status                { return a.status }
func (a *Agent) RecoveryCountdown() int64      { return a.recoveryCountdown }

func (a *Agent) IsSusceptible() bool { return a.status == Susceptible }
func (a *Agent) IsInfected() bool    { return a.status == Infected }
func (a *Agent) IsRecovered() bool   { return a.status == Recovered }

// SetVelocity applies v after reflecting it against the walls the agent
// currently touches.
func (a *Agent) SetVelocity(v Vec2) Reflection {
	var r Reflection
	a.velocity, r = Reflect(a.position, v, a.radius, a.worldLimit)
	return r
}

// SetPosition moves the agent to p, clamped into the arena.
func (a *Agent) SetPosition(p Vec2) Clamp {
	var c Clamp
	a.position, c = ClampPosition(p, a.radius, a.worldLimit)
	return c
}

// AddAcceleration accumulates a pairwise force. Mass is one, so force and
// acceleration are the same quantity.
func (a *Agent) AddAcceleration(f Vec2) { a.acceleration = a.acceleration.Add(f) }

func (a *Agent) SetAcceleration(acc Vec2) { a.acceleration = acc }

// SetInfectionProbability stores p clamped into [0, MaxInfectionProbability].
func (a *Agent) SetInfectionProbability(p float64) {
	a.infectionProbability = clampProbability(p)
}

// SetInfectionRadius stores r, floored at zero.
func (a *Agent) SetInfectionRadius(r float64) {
	a.infectionRadius = math.Max(r, 0)
}

// ScaleTransmission multiplies the infection radius and probability, as
// mask and vulnerability cohorts do, keeping both in range.
func (a *Agent) ScaleTransmission(radiusFactor, probabilityFactor float64) {
	a.SetInfectionRadius(a.infectionRadius * radiusFactor)
	a.SetInfectionProbability(a.infectionProbability * probabilityFactor)
}

func clampProbability(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, MaxInfectionProbability)
}

// Infect starts an infection lasting DefaultRecoveryTicks ticks.
func (a *Agent) Infect() bool {
	return a.InfectFor(DefaultRecoveryTicks)
}

// InfectFor starts an infection lasting ticks updates. Only susceptible
// agents can be infected; it reports whether the status changed.
func (a *Agent) InfectFor(ticks int64) bool {
	if a.status != Susceptible {
		return false
	}
	a.status = Infected
	a.recoveryCountdown = ticks
	return true
}

// Transition summarises what one Update did to the agent.
type Transition struct {
	Reflected Reflection
	Clamped   Clamp
	Recovered bool
}

// Update is the per-tick mutation: velocity first, because reflection
// depends on the position before the move, then position, then the
// recovery countdown.
func (a *Agent) Update(position, velocity Vec2) Transition {
	var t Transition
	t.Reflected = a.SetVelocity(velocity)
	t.Clamped = a.SetPosition(position)
	if a.status == Infected {
		a.recoveryCountdown--
		if a.recoveryCountdown <= 0 {
			a.status = Recovered
			t.Recovered = true
		}
	}
	return t
}

// WillInfect reports whether a, being infected, passes the infection to
// other. The draw uses a's probability and is only taken when both
// statuses qualify.
func (a *Agent) WillInfect(other *Agent, rng Rand) bool {
	return a.IsInfected() && other.IsSusceptible() && rng.Float64() <= a.infectionProbability
}
