// Package geom holds the 3D primitives used to describe mine geometry and
// their WKT encodings.
package geom

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position or direction in mine coordinates (meters, z up).
type Point struct {
	X, Y, Z float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f, p.Z * f}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Cross returns p x q.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - q.Y*p.Z,
		Y: p.Z*q.X - q.Z*p.X,
		Z: p.X*q.Y - q.X*p.Y,
	}
}

// Unit returns p scaled to length 1. A zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// RotateX rotates p about the x axis by angle radians.
func (p Point) RotateX(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{p.X, p.Y*c - p.Z*s, p.Y*s + p.Z*c}
}

// RotateY rotates p about the y axis by angle radians.
func (p Point) RotateY(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{p.X*c + p.Z*s, p.Y, -p.X*s + p.Z*c}
}

// RotateZ rotates p about the z axis by angle radians.
func (p Point) RotateZ(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c, p.Z}
}

// Coords renders "x y z" for WKT bodies.
func (p Point) Coords() string {
	var b strings.Builder
	writeCoords(&b, p)
	return b.String()
}

func (p Point) WKT() string {
	return "POINTZ (" + p.Coords() + ")"
}

func writeCoords(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.Y))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.Z))
}

func formatFloat(v float64) string {
	if v == 0 {
		// avoids "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
