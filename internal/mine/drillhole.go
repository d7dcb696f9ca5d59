package mine

import (
	"math"

	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
)

// maxTilt bounds the random rotation applied about each axis.
const maxTilt = 15 * math.Pi / 180

// DrillHole is a straight hole bored from a corridor wall into the rock.
type DrillHole struct {
	Col  int
	Row  int
	Wall Side
	Line geom.Segment
}

// Length returns the hole length in meters.
func (d DrillHole) Length() float64 {
	return d.Line.Length()
}

// Segments splits the hole into interval-long pieces.
func (d DrillHole) Segments(interval float64) []geom.Segment {
	return d.Line.Split(interval)
}

// bore starts a hole on a random closed lateral wall of c. It returns false
// when every lateral side of c is open.
func bore(src random.Source, c *Cell, lengths sampler.Sampler) (DrillHole, bool) {
	sides := lateralSides
	random.Shuffle(src, len(sides), func(i, j int) { sides[i], sides[j] = sides[j], sides[i] })

	for _, side := range sides {
		if c.Open(side) {
			continue
		}
		t1, t2 := c.Wall(side)
		tri := t1
		if src.IntN(2) == 1 {
			tri = t2
		}
		start := tri.RandomPoint(src)
		dir := outward(tri.Normal().Unit(), start, c.Center)
		dir = dir.
			RotateX(random.Uniform(src, -maxTilt, maxTilt)).
			RotateY(random.Uniform(src, -maxTilt, maxTilt)).
			RotateZ(random.Uniform(src, -maxTilt, maxTilt))

		length := math.Abs(lengths.Sample())
		line := geom.Segment{P1: start, P2: start.Add(dir)}.WithLength(length)
		return DrillHole{Col: c.Col, Row: c.Row, Wall: side, Line: line}, true
	}
	return DrillHole{}, false
}

// outward flips n when it points back toward the cell axis.
func outward(n, p, center geom.Point) geom.Point {
	radial := geom.Point{X: p.X - center.X, Y: p.Y - center.Y}
	if n.Dot(radial) < 0 {
		return n.Scale(-1)
	}
	return n
}
