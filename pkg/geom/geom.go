package geom

import (
	"fmt"
	"math"
)

// Eps is the tolerance used for floating point comparisons of coordinates.
const Eps = 1e-9

// Point is a position in user units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// ApproxEqual reports whether p and q are within tol on both axes.
func (p Point) ApproxEqual(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Size is a width/height pair. Negative values are never produced by the
// scene graph; degenerate zero sizes are valid.
type Size struct {
	Width, Height float64
}

// Vector is a direction with magnitude, used for translations.
type Vector struct {
	X, Y float64
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// Unit returns v scaled to length 1. The zero vector stays zero.
func (v Vector) Unit() Vector {
	l := v.Length()
	if l < Eps {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

// Common unit directions. Down and Up follow the SVG y axis.
var (
	DirRight = Vector{X: 1}
	DirLeft  = Vector{X: -1}
	DirDown  = Vector{Y: 1}
	DirUp    = Vector{Y: -1}
)

// Direction returns the unit vector pointing deg degrees clockwise from the
// positive x axis.
func Direction(deg float64) Vector {
	rad := deg * math.Pi / 180
	return Vector{X: math.Cos(rad), Y: math.Sin(rad)}
}
