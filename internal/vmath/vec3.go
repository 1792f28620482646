package vmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector.
type Vec3 mgl64.Vec3

// V3 builds a Vec3 from its components.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (v Vec3) XY() (float64, float64) { return v[0], v[1] }

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Add(mgl64.Vec3(o)))
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Sub(mgl64.Vec3(o)))
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3(mgl64.Vec3(v).Mul(factor))
}

func (v Vec3) Len() float64 {
	return mgl64.Vec3(v).Len()
}

func (v Vec3) Dot(o Vec3) float64 {
	return mgl64.Vec3(v).Dot(mgl64.Vec3(o))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Cross(mgl64.Vec3(o)))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v[0], v[1], v[2])
}
