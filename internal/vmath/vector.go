package vmath

// Vector is the capability set shared by Vec2 and Vec3.
type Vector[V any] interface {
	Add(other V) V
	Sub(other V) V
	Scale(factor float64) V
	Len() float64
	Dot(other V) float64
	// XY projects the vector onto the x-y plane.
	XY() (x, y float64)
}

// Distance returns the Euclidean distance between two points.
func Distance[V Vector[V]](a, b V) float64 {
	return b.Sub(a).Len()
}

// Normalize returns v scaled to unit length, or v itself if it is zero.
func Normalize[V Vector[V]](v V) V {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
