package agent

import "math"

const positionPrecision = 1e3

// Reflection records which velocity components were negated by Reflect.
type Reflection struct {
	X, Y bool
}

func (r Reflection) Any() bool { return r.X || r.Y }

// Clamp records which position components were pulled back into the arena.
type Clamp struct {
	X, Y bool
}

func (c Clamp) Any() bool { return c.X || c.Y }

// Reflect returns the velocity an agent at pos should actually take when v
// is proposed. A component is negated when the agent sits on or beyond a
// wall and v still points out through that wall. pos must be the position
// before this tick's move.
func Reflect(pos, v Vec2, radius, limit float64) (Vec2, Reflection) {
	var r Reflection
	v.X, r.X = reflectAxis(pos.X, v.X, radius, limit)
	v.Y, r.Y = reflectAxis(pos.Y, v.Y, radius, limit)
	return v, r
}

func reflectAxis(p, v, radius, limit float64) (float64, bool) {
	if p <= radius && v < 0 {
		return -v, true
	}
	if p >= limit-radius && v > 0 {
		return -v, true
	}
	return v, false
}

// ClampPosition rounds each axis to three decimals and keeps it inside
// [radius, limit-radius].
func ClampPosition(p Vec2, radius, limit float64) (Vec2, Clamp) {
	var c Clamp
	p.X, c.X = clampAxis(p.X, radius, limit)
	p.Y, c.Y = clampAxis(p.Y, radius, limit)
	return p, c
}

// Rounding happens first so a clamped value is exactly on the bound.
func clampAxis(p, radius, limit float64) (float64, bool) {
	p = math.Round(p*positionPrecision) / positionPrecision
	if p >= limit-radius {
		return limit - radius, true
	}
	if p <= radius {
		return radius, true
	}
	return p, false
}
