package vmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector.
type Vec2 mgl64.Vec2

// V2 builds a Vec2 from its components.
func V2(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) X() float64 { return v[0] }
func (v Vec2) Y() float64 { return v[1] }

func (v Vec2) XY() (float64, float64) { return v[0], v[1] }

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Add(mgl64.Vec2(o)))
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Sub(mgl64.Vec2(o)))
}

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2(mgl64.Vec2(v).Mul(factor))
}

func (v Vec2) Len() float64 {
	return mgl64.Vec2(v).Len()
}

func (v Vec2) Dot(o Vec2) float64 {
	return mgl64.Vec2(v).Dot(mgl64.Vec2(o))
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.6g, %.6g)", v[0], v[1])
}
