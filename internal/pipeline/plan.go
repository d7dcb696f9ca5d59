package pipeline

import (
	"fmt"

	"github.com/lucasvr/synthetic-mine-maker/internal/quota"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// NewPlan samples the floor count, both quota sequences and the shaft, in
// that order.
func NewPlan(src random.Source, set Settings) (Plan, error) {
	if set.Grid.Columns < 1 || set.Grid.Rows < 1 {
		return Plan{}, fmt.Errorf("%w: grid %dx%d", ErrInvalidSettings, set.Grid.Columns, set.Grid.Rows)
	}

	floors, err := quota.SampleCount(src, set.Floors.Min, set.Floors.Max)
	if err != nil {
		return Plan{}, fmt.Errorf("sample floor count: %w", err)
	}
	if floors < 1 {
		return Plan{}, fmt.Errorf("%w: sampled floor count %d < 1", quota.ErrInvalidArgument, floors)
	}

	shapes, err := quota.Distribute(src, set.Shapes.Min, set.Shapes.Max, floors)
	if err != nil {
		return Plan{}, fmt.Errorf("distribute shapes: %w", err)
	}
	drills, err := quota.Distribute(src, set.Drills.Min, set.Drills.Max, floors)
	if err != nil {
		return Plan{}, fmt.Errorf("distribute drill holes: %w", err)
	}

	shaft := Coord{
		Col: src.IntN(set.Grid.Columns),
		Row: src.IntN(set.Grid.Rows),
	}
	return Plan{FloorCount: floors, ShapeQuotas: shapes, DrillQuotas: drills, Shaft: shaft}, nil
}

// Request builds the generator input for floor i.
func (p Plan) Request(i int) FloorRequest {
	return FloorRequest{
		Index:      i,
		FloorCount: p.FloorCount,
		ShapeQuota: p.ShapeQuotas[i],
		DrillQuota: p.DrillQuotas[i],
		Shaft:      p.Shaft,
	}
}
