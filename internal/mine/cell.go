package mine

import "github.com/lucasvr/synthetic-mine-maker/internal/geom"

// Side identifies a cell face.
type Side int

const (
	North Side = iota
	South
	West
	East
	Up
	Down
)

var sideNames = [...]string{"north", "south", "west", "east", "up", "down"}

func (s Side) String() string {
	if s < North || s > Down {
		return "unknown"
	}
	return sideNames[s]
}

// lateralSides are the walls a drill hole may start from.
var lateralSides = [4]Side{North, South, West, East}

// CellKind tags how a grid cell came to be excavated.
type CellKind int

const (
	KindCorridor CellKind = iota
	KindEndpoint
	KindShaft
)

// Cell is one excavated grid cell: a box of width x width x height whose
// floor sits at its center z.
type Cell struct {
	Col    int
	Row    int
	Kind   CellKind
	Center geom.Point
	Width  float64
	Height float64

	open [6]bool
}

func newCell(col, row int, kind CellKind, center geom.Point, width, height float64) *Cell {
	return &Cell{Col: col, Row: row, Kind: kind, Center: center, Width: width, Height: height}
}

// Open reports whether side connects to a neighbouring cell.
func (c *Cell) Open(side Side) bool {
	return c.open[side]
}

func (c *Cell) setOpen(side Side, open bool) {
	c.open[side] = open
}

// corners returns the four floor corners followed by the four ceiling
// corners: (-x,-y), (-x,+y), (+x,-y), (+x,+y).
func (c *Cell) corners() (floor, ceiling [4]geom.Point) {
	h := c.Width / 2
	x, y, z := c.Center.X, c.Center.Y, c.Center.Z
	floor = [4]geom.Point{
		{X: x - h, Y: y - h, Z: z},
		{X: x - h, Y: y + h, Z: z},
		{X: x + h, Y: y - h, Z: z},
		{X: x + h, Y: y + h, Z: z},
	}
	for i, p := range floor {
		ceiling[i] = geom.Point{X: p.X, Y: p.Y, Z: p.Z + c.Height}
	}
	return floor, ceiling
}

// Wall returns the two triangles covering side.
func (c *Cell) Wall(side Side) (geom.Triangle, geom.Triangle) {
	f, u := c.corners()
	switch side {
	case North:
		return geom.Triangle{A: f[2], B: f[0], C: u[0]}, geom.Triangle{A: u[0], B: u[2], C: f[2]}
	case South:
		return geom.Triangle{A: f[1], B: f[3], C: u[3]}, geom.Triangle{A: u[3], B: u[1], C: f[1]}
	case West:
		return geom.Triangle{A: f[0], B: f[1], C: u[1]}, geom.Triangle{A: u[1], B: u[0], C: f[0]}
	case East:
		return geom.Triangle{A: f[3], B: f[2], C: u[2]}, geom.Triangle{A: u[2], B: u[3], C: f[3]}
	case Down:
		return geom.Triangle{A: f[0], B: f[2], C: f[1]}, geom.Triangle{A: f[1], B: f[2], C: f[3]}
	default:
		return geom.Triangle{A: u[0], B: u[2], C: u[1]}, geom.Triangle{A: u[1], B: u[2], C: u[3]}
	}
}

// Faces returns the triangles of every closed side.
func (c *Cell) Faces() []geom.Polygon {
	out := make([]geom.Polygon, 0, 12)
	for side := North; side <= Down; side++ {
		if c.open[side] {
			continue
		}
		t1, t2 := c.Wall(side)
		out = append(out, t1.Polygon(), t2.Polygon())
	}
	return out
}
