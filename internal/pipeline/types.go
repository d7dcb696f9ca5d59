package pipeline

import (
	"fmt"
	"time"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/quota"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// Coord is a grid position.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Range is a half-open sampling interval [Min, Max).
type Range struct {
	Min float64
	Max float64
}

// GridExtent bounds the shaft coordinate draw.
type GridExtent struct {
	Columns int
	Rows    int
}

// FloorRequest carries everything a floor generator needs for one floor.
type FloorRequest struct {
	Index      int
	FloorCount int
	ShapeQuota int
	DrillQuota int
	Shaft      Coord
}

// FloorGenerator builds one floor.
type FloorGenerator interface {
	Create(req FloorRequest) (export.Floor, error)
}

// Exporter writes one artifact per floor into dir.
type Exporter interface {
	Write(floorIndex int, floor export.Floor, dir string) error
}

// Settings are the numeric inputs of one run.
type Settings struct {
	OutputDir string
	Floors    Range
	Shapes    Range
	Drills    Range
	Grid      GridExtent
}

// Components are the collaborators of one run.
type Components struct {
	Random    random.Source
	Generator FloorGenerator
	Exporter  Exporter
}

// Plan is fixed before the first floor is generated and never changes
// afterwards.
type Plan struct {
	FloorCount  int
	ShapeQuotas quota.Result
	DrillQuotas quota.Result
	Shaft       Coord
}

// Summary reports a completed run.
type Summary struct {
	RunID       string
	FloorCount  int
	ShapeQuotas quota.Result
	DrillQuotas quota.Result
	ShapeTotal  int
	DrillTotal  int
	Shaft       Coord
	FloorBlocks []int
	TotalBlocks int
	Removed     int
	Duration    time.Duration
}
