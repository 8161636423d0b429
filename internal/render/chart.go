// Package render draws spawn probability curves, either as a full-screen
// terminal chart or as a plain table.
package render

import "math"

// Point is one sample of a curve. NaN values of Y mark levels without data.
type Point struct {
	X, Y float64
}

// Chart is what a Renderer draws: the curve, a title shown above it and a
// label naming the window.
type Chart struct {
	Title  string
	Label  string
	Points []Point
}

// Renderer displays a chart and returns once the operator is done with it.
type Renderer interface {
	Plot(c Chart) error
}

// Peak returns the point with the highest finite Y. ok is false when the
// chart has no finite point.
func (c Chart) Peak() (p Point, ok bool) {
	for _, pt := range c.Points {
		if math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
			continue
		}
		if !ok || pt.Y > p.Y {
			p, ok = pt, true
		}
	}
	return p, ok
}

// xRange returns the smallest and largest X.
func (c Chart) xRange() (lo, hi float64) {
	for i, pt := range c.Points {
		if i == 0 || pt.X < lo {
			lo = pt.X
		}
		if i == 0 || pt.X > hi {
			hi = pt.X
		}
	}
	return lo, hi
}
