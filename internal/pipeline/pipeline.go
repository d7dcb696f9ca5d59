package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/observability"
)

// Run executes one generation run.
func Run(set Settings, comp Components) (Summary, error) {
	started := time.Now()
	if err := comp.validate(); err != nil {
		return Summary{}, err
	}
	runID := uuid.NewString()

	removed, err := export.PrepareOutputDir(set.OutputDir)
	if err != nil {
		observability.RecordFailure(observability.StagePrepare)
		return Summary{}, err
	}
	observability.RecordCleanup(removed)

	plan, err := NewPlan(comp.Random, set)
	if err != nil {
		observability.RecordFailure(observability.StagePlan)
		return Summary{}, err
	}
	observability.RecordPlan(plan.ShapeQuotas.Sum(), plan.DrillQuotas.Sum())
	log.Info().
		Str("run_id", runID).
		Int("floors", plan.FloorCount).
		Ints("shapes", plan.ShapeQuotas).
		Ints("drills", plan.DrillQuotas).
		Stringer("shaft", plan.Shaft).
		Int("removed", removed).
		Msg("pipeline.Run plan ready")

	summary := Summary{
		RunID:       runID,
		FloorCount:  plan.FloorCount,
		ShapeQuotas: plan.ShapeQuotas,
		DrillQuotas: plan.DrillQuotas,
		ShapeTotal:  plan.ShapeQuotas.Sum(),
		DrillTotal:  plan.DrillQuotas.Sum(),
		Shaft:       plan.Shaft,
		FloorBlocks: make([]int, 0, plan.FloorCount),
		Removed:     removed,
	}

	for i := 0; i < plan.FloorCount; i++ {
		blocks, err := runFloor(plan.Request(i), comp, set.OutputDir)
		if err != nil {
			return Summary{}, err
		}
		summary.FloorBlocks = append(summary.FloorBlocks, blocks)
		summary.TotalBlocks += blocks
	}

	summary.Duration = time.Since(started)
	log.Info().
		Str("run_id", runID).
		Int("floors", summary.FloorCount).
		Int("blocks", summary.TotalBlocks).
		Dur("elapsed", summary.Duration).
		Msg("pipeline.Run complete")
	return summary, nil
}

func runFloor(req FloorRequest, comp Components, dir string) (int, error) {
	genStart := time.Now()
	floor, err := comp.Generator.Create(req)
	if err == nil && floor == nil {
		err = ErrNilFloor
	}
	if err != nil {
		observability.RecordFailure(observability.StageGenerate)
		return 0, &CollaboratorError{Stage: observability.StageGenerate, Floor: req.Index, Err: err}
	}
	genElapsed := time.Since(genStart)

	expStart := time.Now()
	if err := comp.Exporter.Write(req.Index, floor, dir); err != nil {
		observability.RecordFailure(observability.StageExport)
		return 0, &CollaboratorError{Stage: observability.StageExport, Floor: req.Index, Err: err}
	}
	expElapsed := time.Since(expStart)

	blocks := floor.BlockCount()
	observability.RecordFloor(blocks, genElapsed, expElapsed)
	log.Info().
		Int("floor", req.Index).
		Int("shapes", req.ShapeQuota).
		Int("drills", req.DrillQuota).
		Int("blocks", blocks).
		Dur("generate", genElapsed).
		Dur("export", expElapsed).
		Msg("pipeline.Run floor exported")
	return blocks, nil
}

func (c Components) validate() error {
	switch {
	case c.Random == nil:
		return fmt.Errorf("%w: random source missing", ErrInvalidSettings)
	case c.Generator == nil:
		return fmt.Errorf("%w: floor generator missing", ErrInvalidSettings)
	case c.Exporter == nil:
		return fmt.Errorf("%w: exporter missing", ErrInvalidSettings)
	}
	return nil
}
