package viz

import (
	"math"
)

// margin leaves room around the fitted points.
const margin = 0.85

// Viewport maps the simulation's xy plane onto canvas pixels. The y axis
// points up on screen.
type Viewport struct {
	CenterX, CenterY float64
	// Scale is pixels per meter.
	Scale float64
	// W and H are the canvas size in pixels.
	W, H int
}

// FitViewport returns a viewport of w x h pixels showing every point. A
// single point, or none, is shown at the centre with a scale of one pixel
// per meter.
func FitViewport(xs, ys []float64, w, h int) Viewport {
	v := Viewport{Scale: 1, W: w, H: h}
	if len(xs) == 0 {
		return v
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	v.CenterX = (minX + maxX) / 2
	v.CenterY = (minY + maxY) / 2

	spanX, spanY := maxX-minX, maxY-minY
	switch {
	case spanX == 0 && spanY == 0:
		return v
	case spanX == 0:
		v.Scale = margin * float64(h) / spanY
	case spanY == 0:
		v.Scale = margin * float64(w) / spanX
	default:
		v.Scale = margin * math.Min(float64(w)/spanX, float64(h)/spanY)
	}
	return v
}

// Project returns the pixel for (x, y) and whether it is on the canvas.
func (v Viewport) Project(x, y float64) (int, int, bool) {
	px := float64(v.W)/2 + (x-v.CenterX)*v.Scale
	py := float64(v.H)/2 - (y-v.CenterY)*v.Scale
	if math.IsNaN(px) || math.IsNaN(py) {
		return 0, 0, false
	}
	ix, iy := int(math.Floor(px)), int(math.Floor(py))
	return ix, iy, ix >= 0 && iy >= 0 && ix < v.W && iy < v.H
}

// Zoom scales the view around its centre.
func (v Viewport) Zoom(factor float64) Viewport {
	v.Scale *= factor
	return v
}
