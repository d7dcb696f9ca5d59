package geom

import (
	"math"
	"strings"

	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// Segment is a directed line from P1 to P2.
type Segment struct {
	P1, P2 Point
}

// Direction returns P2 - P1.
func (s Segment) Direction() Point {
	return s.P2.Sub(s.P1)
}

func (s Segment) Length() float64 {
	return s.Direction().Len()
}

// WithLength keeps P1 and the direction and moves P2 so the segment is
// length long. A degenerate segment is stretched along +x.
func (s Segment) WithLength(length float64) Segment {
	dir := s.Direction().Unit()
	if dir == (Point{}) {
		dir = Point{X: 1}
	}
	return Segment{P1: s.P1, P2: s.P1.Add(dir.Scale(length))}
}

// Split cuts s into consecutive pieces of interval length. The last piece
// carries the remainder and ends exactly at P2.
func (s Segment) Split(interval float64) []Segment {
	total := s.Length()
	if interval <= 0 || total == 0 {
		return []Segment{s}
	}
	dir := s.Direction().Unit()
	n := max(1, int(math.Ceil(total/interval-1e-9)))
	out := make([]Segment, 0, n)
	start := s.P1
	for i := 1; i <= n; i++ {
		end := s.P1.Add(dir.Scale(float64(i) * interval))
		if i == n {
			end = s.P2
		}
		out = append(out, Segment{P1: start, P2: end})
		start = end
	}
	return out
}

func (s Segment) LineString() LineString {
	return LineString{s.P1, s.P2}
}

// LineString is an ordered run of points.
type LineString []Point

func (l LineString) WKT() string {
	if len(l) == 0 {
		return "LINESTRINGZ EMPTY"
	}
	var b strings.Builder
	b.WriteString("LINESTRINGZ")
	writeRing(&b, l)
	return b.String()
}

// MultiLineString groups line strings into one geometry.
type MultiLineString []LineString

func (m MultiLineString) WKT() string {
	if len(m) == 0 {
		return "MULTILINESTRINGZ EMPTY"
	}
	var b strings.Builder
	b.WriteString("MULTILINESTRINGZ(")
	for i, l := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		writeRing(&b, l)
	}
	b.WriteByte(')')
	return b.String()
}

// Polygon is a single exterior ring. The closing point is added on encode
// when the ring is open.
type Polygon []Point

func (p Polygon) closed() []Point {
	if len(p) == 0 || p[0] == p[len(p)-1] {
		return p
	}
	return append(append(make([]Point, 0, len(p)+1), p...), p[0])
}

func (p Polygon) WKT() string {
	if len(p) == 0 {
		return "POLYGONZ EMPTY"
	}
	var b strings.Builder
	b.WriteString("POLYGONZ(")
	writeRing(&b, p.closed())
	b.WriteByte(')')
	return b.String()
}

// PolyhedralSurface is a set of polygon faces.
type PolyhedralSurface []Polygon

func (s PolyhedralSurface) WKT() string {
	if len(s) == 0 {
		return "POLYHEDRALSURFACEZ EMPTY"
	}
	var b strings.Builder
	b.WriteString("POLYHEDRALSURFACEZ(")
	for i, face := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		writeRing(&b, face.closed())
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// Triangle is a planar face with vertices in winding order.
type Triangle struct {
	A, B, C Point
}

// Normal returns (B-A) x (C-A), not normalised.
func (t Triangle) Normal() Point {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// RandomPoint draws a point uniformly over the triangle's area.
func (t Triangle) RandomPoint(src random.Source) Point {
	a := math.Sqrt(src.Float64())
	b := src.Float64()
	return t.A.Scale(1 - a).
		Add(t.B.Scale(a * (1 - b))).
		Add(t.C.Scale(a * b))
}

func (t Triangle) Polygon() Polygon {
	return Polygon{t.A, t.B, t.C}
}

// Box returns the six quad faces of an axis-aligned cube of edge size
// centred on center.
func Box(center Point, size float64) PolyhedralSurface {
	h := size / 2
	x0, y0, z0 := center.X-h, center.Y-h, center.Z-h
	x1, y1, z1 := center.X+h, center.Y+h, center.Z+h
	v := [8]Point{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1},
		{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0},
	}
	faces := [6][4]int{
		{3, 0, 4, 5},
		{1, 2, 6, 7},
		{0, 3, 2, 1},
		{4, 7, 6, 5},
		{0, 1, 7, 4},
		{2, 3, 5, 6},
	}
	out := make(PolyhedralSurface, 0, len(faces))
	for _, f := range faces {
		out = append(out, Polygon{v[f[0]], v[f[1]], v[f[2]], v[f[3]]})
	}
	return out
}

func writeRing(b *strings.Builder, pts []Point) {
	b.WriteByte('(')
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCoords(b, p)
	}
	b.WriteByte(')')
}
