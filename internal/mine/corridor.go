package mine

import (
	"sort"

	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// grid is the column/row plane of one floor.
type grid struct {
	cols, rows int
	cells      []*Cell
	order      []*Cell
	center     func(col, row int) geom.Point
	width      float64
	height     float64
}

func newGrid(cols, rows int, width, height float64, center func(col, row int) geom.Point) *grid {
	return &grid{
		cols:   cols,
		rows:   rows,
		cells:  make([]*Cell, cols*rows),
		center: center,
		width:  width,
		height: height,
	}
}

func (g *grid) at(col, row int) *Cell {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// dig excavates (col, row) once. Cells keep their first-dug order.
func (g *grid) dig(col, row int, kind CellKind) *Cell {
	if c := g.at(col, row); c != nil {
		return c
	}
	c := newCell(col, row, kind, g.center(col, row), g.width, g.height)
	g.cells[row*g.cols+col] = c
	g.order = append(g.order, c)
	return c
}

// digL connects from and to with a run along the column axis on from's row,
// then along the row axis on to's column.
func (g *grid) digL(from, to pipeline.Coord) {
	step := 1
	if to.Col < from.Col {
		step = -1
	}
	for col := from.Col; ; col += step {
		g.dig(col, from.Row, KindCorridor)
		if col == to.Col {
			break
		}
	}
	step = 1
	if to.Row < from.Row {
		step = -1
	}
	for row := from.Row; ; row += step {
		g.dig(to.Col, row, KindCorridor)
		if row == to.Row {
			break
		}
	}
}

// linkNeighbours opens the sides shared by adjacent excavated cells.
func (g *grid) linkNeighbours() {
	for _, c := range g.order {
		c.setOpen(North, g.at(c.Col, c.Row-1) != nil)
		c.setOpen(South, g.at(c.Col, c.Row+1) != nil)
		c.setOpen(West, g.at(c.Col-1, c.Row) != nil)
		c.setOpen(East, g.at(c.Col+1, c.Row) != nil)
	}
}

// randomEndpoints returns the shaft followed by n-1 uniformly drawn cells.
func randomEndpoints(src random.Source, shaft pipeline.Coord, n, cols, rows int) []pipeline.Coord {
	out := make([]pipeline.Coord, 0, n)
	out = append(out, shaft)
	for i := 1; i < n; i++ {
		out = append(out, pipeline.Coord{Col: src.IntN(cols), Row: src.IntN(rows)})
	}
	return out
}

// connectEndpoints links every endpoint to its nearest endpoint that does
// not close a cycle, producing a forest of corridors.
func (g *grid) connectEndpoints(endpoints []pipeline.Coord) {
	for _, p := range endpoints {
		g.dig(p.Col, p.Row, KindEndpoint)
	}

	sets := newDisjointSet(len(endpoints))
	for i, from := range endpoints {
		for _, j := range byDistance(endpoints, i) {
			if sets.union(i, j) {
				g.digL(from, endpoints[j])
				break
			}
		}
	}
	g.linkNeighbours()
}

// byDistance orders every other endpoint index by squared euclidean
// distance to endpoints[i], ties broken by index.
func byDistance(endpoints []pipeline.Coord, i int) []int {
	idx := make([]int, 0, len(endpoints)-1)
	for j := range endpoints {
		if j != i {
			idx = append(idx, j)
		}
	}
	dist := func(j int) int {
		dc := endpoints[j].Col - endpoints[i].Col
		dr := endpoints[j].Row - endpoints[i].Row
		return dc*dc + dr*dr
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist(idx[a]) < dist(idx[b])
	})
	return idx
}

// disjointSet tracks endpoint connectivity. A union inside one set would
// close a cycle and is refused.
type disjointSet struct {
	parent []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent}
}

func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	d.parent[rb] = ra
	return true
}
