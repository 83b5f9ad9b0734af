// Package vmath holds the small float64 vector types the simulation uses.
// Motion is planar: Z is carried for the transform record but systems keep it at 0.
package vmath

import "math"

type Vec2 struct {
	X, Y float64
}

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector, or zero for a zero vector.
func (v Vec2) Normalize() Vec2 {
	l := math.Sqrt(v.LenSq())
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Vec3 lifts v onto the plane z=0.
func (v Vec2) Vec3() Vec3 { return Vec3{v.X, v.Y, 0} }

func (v Vec3) Add(o Vec3) Vec3       { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3       { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3  { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) LenSq() float64        { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) XY() Vec2              { return Vec2{v.X, v.Y} }
func (v Vec3) DistSq(o Vec3) float64 { return v.Sub(o).LenSq() }

func (v Vec3) Normalize() Vec3 {
	l := math.Sqrt(v.LenSq())
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Heading returns the rotation about z that points the +X axis along v.
func Heading(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// Forward returns the +X axis rotated by heading radians about z.
func Forward(heading float64) Vec3 {
	s, c := math.Sincos(heading)
	return Vec3{c, s, 0}
}

// Sign returns -1 for negative x and +1 otherwise.
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
