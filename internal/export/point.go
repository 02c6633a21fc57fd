// Package export flattens solved root sets into points and writes them for
// whatever draws them. Drawing itself happens elsewhere.
package export

import (
	"errors"
	"fmt"
	"math/cmplx"

	"algebraics/internal/solve"
)

// ErrInvalidViewport is returned for a viewport whose corners are out of order.
var ErrInvalidViewport = errors.New("invalid viewport")

// Point is one algebraic number with the properties a renderer sizes and
// colors it by.
type Point struct {
	Z            complex128 // the root
	Length       float64    // length of its polynomial
	Degree       int        // degree of its polynomial
	LeadingCoeff float64    // magnitude of the polynomial's leading coefficient
}

// Points returns one point per root of r.
func Points(r solve.Result) []Point {
	lead := cmplx.Abs(r.Polynomial.Leading())
	points := make([]Point, 0, len(r.Roots.Roots))
	for _, z := range r.Roots.Roots {
		points = append(points, Point{
			Z:            z,
			Length:       r.Roots.Length,
			Degree:       r.Polynomial.Degree(),
			LeadingCoeff: lead,
		})
	}
	return points
}

// Viewport is a rectangle of the complex plane. The zero Viewport accepts
// every point.
type Viewport struct {
	XMin, YMin float64
	XMax, YMax float64
}

// ParseViewport builds a viewport from x_min, y_min, x_max, y_max. An empty
// slice yields the unbounded viewport.
func ParseViewport(bounds []float64) (Viewport, error) {
	if len(bounds) == 0 {
		return Viewport{}, nil
	}
	if len(bounds) != 4 {
		return Viewport{}, fmt.Errorf("%w: want x_min y_min x_max y_max, got %d values", ErrInvalidViewport, len(bounds))
	}
	v := Viewport{XMin: bounds[0], YMin: bounds[1], XMax: bounds[2], YMax: bounds[3]}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// IsZero reports whether v is the unbounded viewport.
func (v Viewport) IsZero() bool { return v == Viewport{} }

// Validate requires x_min < x_max and y_min < y_max.
func (v Viewport) Validate() error {
	if v.IsZero() {
		return nil
	}
	if v.XMin >= v.XMax || v.YMin >= v.YMax {
		return fmt.Errorf("%w: x_min must be < x_max and y_min must be < y_max", ErrInvalidViewport)
	}
	return nil
}

// Contains reports whether z lies inside the viewport, edges included.
func (v Viewport) Contains(z complex128) bool {
	if v.IsZero() {
		return true
	}
	x, y := real(z), imag(z)
	return x >= v.XMin && x <= v.XMax && y >= v.YMin && y <= v.YMax
}
