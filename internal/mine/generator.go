package mine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
)

var (
	ErrInvalidConfig  = errors.New("mine: invalid generator config")
	ErrInvalidRequest = errors.New("mine: invalid floor request")
)

// Config shapes the grid and the solids placed on it.
type Config struct {
	Columns       int
	Rows          int
	CellWidth     float64
	CellHeight    float64
	LevelPadding  float64
	MinEndpoints  int
	MaxEndpoints  int
	DrillInterval float64
	BlockSize     float64
}

func DefaultConfig() Config {
	return Config{
		Columns:       100,
		Rows:          45,
		CellWidth:     4,
		CellHeight:    3,
		LevelPadding:  25,
		MinEndpoints:  10,
		MaxEndpoints:  20,
		DrillInterval: 10,
		BlockSize:     5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Columns < 1 || c.Rows < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell %vx%v", ErrInvalidConfig, c.CellWidth, c.CellHeight)
	case c.LevelPadding <= 0:
		return fmt.Errorf("%w: level padding %v", ErrInvalidConfig, c.LevelPadding)
	case c.MinEndpoints < 1 || c.MaxEndpoints < c.MinEndpoints:
		return fmt.Errorf("%w: endpoints [%d, %d]", ErrInvalidConfig, c.MinEndpoints, c.MaxEndpoints)
	case c.DrillInterval <= 0:
		return fmt.Errorf("%w: drill interval %v", ErrInvalidConfig, c.DrillInterval)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %v", ErrInvalidConfig, c.BlockSize)
	}
	return nil
}

// levelDepth is the vertical distance between consecutive floors.
func (c Config) levelDepth() float64 {
	return c.CellHeight * c.LevelPadding
}

// Generator builds floors. It is not safe for concurrent use because every
// floor draws from the shared source.
type Generator struct {
	cfg      Config
	samplers sampler.Set
	src      random.Source
}

var _ pipeline.FloorGenerator = (*Generator)(nil)

func NewGenerator(cfg Config, samplers sampler.Set, src random.Source) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := samplers.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Generator{cfg: cfg, samplers: samplers, src: src}, nil
}

// Create satisfies pipeline.FloorGenerator.
func (g *Generator) Create(req pipeline.FloorRequest) (export.Floor, error) {
	return g.Generate(req)
}

// Generate builds corridors, then the elevator, then drill holes, then
// shapes. The draw order is part of the reproducibility contract.
func (g *Generator) Generate(req pipeline.FloorRequest) (*Floor, error) {
	if err := g.checkRequest(req); err != nil {
		return nil, err
	}

	z := -float64(req.Index) * g.cfg.levelDepth()
	center := func(col, row int) geom.Point {
		return geom.Point{X: float64(col) * g.cfg.CellWidth, Y: float64(row) * g.cfg.CellWidth, Z: z}
	}
	plane := newGrid(g.cfg.Columns, g.cfg.Rows, g.cfg.CellWidth, g.cfg.CellHeight, center)

	n := random.IntRange(g.src, g.cfg.MinEndpoints, g.cfg.MaxEndpoints)
	plane.connectEndpoints(randomEndpoints(g.src, req.Shaft, n, g.cfg.Columns, g.cfg.Rows))

	floor := &Floor{
		index:         req.Index,
		drillInterval: g.cfg.DrillInterval,
		Corridor:      plane.order,
	}
	if req.Index > 0 && req.Index == req.FloorCount-1 {
		floor.Elevator = g.elevator(req, center)
	}

	for a := 0; a < req.DrillQuota; a++ {
		cell := floor.Corridor[g.src.IntN(len(floor.Corridor))]
		if hole, ok := bore(g.src, cell, g.samplers.DrillLength); ok {
			floor.Drills = append(floor.Drills, hole)
		}
	}

	for _, seed := range g.shapeSeeds(floor, req.ShapeQuota) {
		floor.Bodies = append(floor.Bodies, growShape(g.src, seed, g.samplers, g.cfg.BlockSize))
	}

	log.Debug().
		Int("floor", req.Index).
		Int("cells", len(floor.Corridor)).
		Int("endpoints", n).
		Int("drills", len(floor.Drills)).
		Int("drill_quota", req.DrillQuota).
		Int("shapes", len(floor.Bodies)).
		Int("blocks", floor.BlockCount()).
		Bool("elevator", floor.Elevator != nil).
		Msg("mine.Generator.Generate floor ready")
	return floor, nil
}

func (g *Generator) checkRequest(req pipeline.FloorRequest) error {
	switch {
	case req.FloorCount < 1 || req.Index < 0 || req.Index >= req.FloorCount:
		return fmt.Errorf("%w: floor %d of %d", ErrInvalidRequest, req.Index, req.FloorCount)
	case req.ShapeQuota < 0 || req.DrillQuota < 0:
		return fmt.Errorf("%w: negative quota shapes=%d drills=%d", ErrInvalidRequest, req.ShapeQuota, req.DrillQuota)
	case req.Shaft.Col < 0 || req.Shaft.Col >= g.cfg.Columns || req.Shaft.Row < 0 || req.Shaft.Row >= g.cfg.Rows:
		return fmt.Errorf("%w: shaft %s outside %dx%d grid", ErrInvalidRequest, req.Shaft, g.cfg.Columns, g.cfg.Rows)
	}
	return nil
}

// elevator spans from this floor up to the ceiling of floor 0.
func (g *Generator) elevator(req pipeline.FloorRequest, center func(col, row int) geom.Point) *Cell {
	height := float64(req.Index)*g.cfg.levelDepth() + g.cfg.CellHeight
	return newCell(req.Shaft.Col, req.Shaft.Row, KindShaft, center(req.Shaft.Col, req.Shaft.Row), g.cfg.CellWidth, height)
}

// shapeSeeds picks one seed per shape: drill hole ends without replacement
// when there are enough, with replacement when there are too few, and
// corridor cell centers when the floor has no drill holes.
func (g *Generator) shapeSeeds(floor *Floor, count int) []geom.Point {
	if count == 0 {
		return nil
	}
	seeds := make([]geom.Point, 0, count)
	switch {
	case len(floor.Drills) >= count:
		idx := make([]int, len(floor.Drills))
		for i := range idx {
			idx[i] = i
		}
		for i := 0; i < count; i++ {
			j := i + g.src.IntN(len(idx)-i)
			idx[i], idx[j] = idx[j], idx[i]
			seeds = append(seeds, floor.Drills[idx[i]].Line.P2)
		}
	case len(floor.Drills) > 0:
		for i := 0; i < count; i++ {
			seeds = append(seeds, floor.Drills[g.src.IntN(len(floor.Drills))].Line.P2)
		}
	default:
		for i := 0; i < count; i++ {
			seeds = append(seeds, floor.Corridor[g.src.IntN(len(floor.Corridor))].Center)
		}
	}
	return seeds
}
