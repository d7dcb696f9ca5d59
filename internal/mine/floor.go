package mine

import (
	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
)

// Floor is one generated mine level.
type Floor struct {
	index         int
	drillInterval float64

	Corridor []*Cell
	Elevator *Cell
	Drills   []DrillHole
	Bodies   []*Shape
}

var _ export.Floor = (*Floor)(nil)

func (f *Floor) Index() int {
	return f.index
}

func (f *Floor) BlockCount() int {
	total := 0
	for _, s := range f.Bodies {
		total += len(s.Blocks)
	}
	return total
}

// MineWorking returns the exposed faces of every corridor cell, plus the
// elevator shaft when this floor carries it.
func (f *Floor) MineWorking() geom.PolyhedralSurface {
	var out geom.PolyhedralSurface
	for _, c := range f.Corridor {
		out = append(out, c.Faces()...)
	}
	if f.Elevator != nil {
		out = append(out, f.Elevator.Faces()...)
	}
	return out
}

func (f *Floor) DrillHoles() []geom.LineString {
	out := make([]geom.LineString, 0, len(f.Drills))
	for _, d := range f.Drills {
		out = append(out, d.Line.LineString())
	}
	return out
}

func (f *Floor) DrillSegments() []geom.LineString {
	var out []geom.LineString
	for _, d := range f.Drills {
		for _, s := range d.Segments(f.drillInterval) {
			out = append(out, s.LineString())
		}
	}
	return out
}

func (f *Floor) Shapes() []geom.PolyhedralSurface {
	out := make([]geom.PolyhedralSurface, 0, len(f.Bodies))
	for _, s := range f.Bodies {
		out = append(out, s.Surface())
	}
	return out
}

func (f *Floor) BlockModels() []geom.PolyhedralSurface {
	var out []geom.PolyhedralSurface
	for _, s := range f.Bodies {
		out = append(out, s.BlockModels()...)
	}
	return out
}
