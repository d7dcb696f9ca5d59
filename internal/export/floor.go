package export

import "github.com/lucasvr/synthetic-mine-maker/internal/geom"

// Floor is the generated geometry of one mine level as exporters see it.
type Floor interface {
	// Index is the zero-based floor index.
	Index() int
	// BlockCount is the number of occupied blocks across all shapes.
	BlockCount() int
	MineWorking() geom.PolyhedralSurface
	DrillHoles() []geom.LineString
	DrillSegments() []geom.LineString
	Shapes() []geom.PolyhedralSurface
	BlockModels() []geom.PolyhedralSurface
}
