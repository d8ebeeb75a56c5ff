package agent

import "math"

// Vec2 is a point or direction in the arena plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Norm2 is the squared length, which doubles as the kinetic contribution of
// a unit-mass agent moving at v.
func (v Vec2) Norm2() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Norm() float64 { return math.Sqrt(v.Norm2()) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Norm() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
