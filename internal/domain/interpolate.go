package domain

import "fmt"

// Point is one (x, y) control point of a calibration table.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Table is an ordered sequence of control points with strictly increasing X.
type Table []Point

// Interpolate returns a piecewise-linear estimate of y at x.
//
//   - no points: 0
//   - one point: that point's Y for every x
//   - x <= first X: proportional through the origin, first.Y * x / first.X
//     (first.Y * x when first.X is 0)
//   - between two points: linear interpolation of the enclosing segment
//   - x > last X: the final segment's slope, extended
//
// Points must have strictly increasing X; Interpolate does not check.
func Interpolate(x float64, points []Point) float64 {
	n := len(points)
	switch n {
	case 0:
		return 0
	case 1:
		return points[0].Y
	}

	first := points[0]
	if x <= first.X {
		if first.X == 0 {
			return first.Y * x
		}
		return first.Y * (x / first.X)
	}

	for i := 0; i < n-1; i++ {
		p1, p2 := points[i], points[i+1]
		if x >= p1.X && x <= p2.X {
			return lerp(p1, p2, x)
		}
	}

	return lerp(points[n-2], points[n-1], x)
}

// lerp evaluates the line through p1 and p2 at x. t may fall outside [0, 1]
// when extrapolating past the last point.
func lerp(p1, p2 Point, x float64) float64 {
	t := (x - p1.X) / (p2.X - p1.X)
	return p1.Y + t*(p2.Y-p1.Y)
}

// At interpolates the table at x.
func (t Table) At(x float64) float64 {
	return Interpolate(x, t)
}

// Validate reports a table whose X values are not strictly increasing.
// An empty table is valid and always yields 0.
func (t Table) Validate() error {
	for i := 1; i < len(t); i++ {
		if !(t[i].X > t[i-1].X) {
			return fmt.Errorf("%w: point %d x=%g does not follow x=%g", ErrInvalidTable, i, t[i].X, t[i-1].X)
		}
	}
	return nil
}
