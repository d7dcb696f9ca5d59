package config

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/mine"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
)

// Settings converts the numeric bounds into pipeline input.
func (c Config) Settings(outputDir string) pipeline.Settings {
	return pipeline.Settings{
		OutputDir: outputDir,
		Floors:    pipeline.Range{Min: float64(c.Floors.Min), Max: float64(c.Floors.Max)},
		Shapes:    pipeline.Range{Min: float64(c.Shapes.Min), Max: float64(c.Shapes.Max)},
		Drills:    pipeline.Range{Min: float64(c.DrillHoles.Min), Max: float64(c.DrillHoles.Max)},
		Grid:      pipeline.GridExtent{Columns: c.Grid.Columns, Rows: c.Grid.Rows},
	}
}

func (c Config) MineConfig() mine.Config {
	return mine.Config{
		Columns:       c.Grid.Columns,
		Rows:          c.Grid.Rows,
		CellWidth:     c.Grid.CellWidth,
		CellHeight:    c.Grid.CellHeight,
		LevelPadding:  c.Grid.LevelPadding,
		MinEndpoints:  c.Grid.MinEndpoints,
		MaxEndpoints:  c.Grid.MaxEndpoints,
		DrillInterval: c.DrillHoles.IntervalLength,
		BlockSize:     c.ShapeSizes.BlockSize,
	}
}

// Samplers builds the sampler set once. The drill length sampler is
// empirical when lengths_file is set and theoretical otherwise.
func (c Config) Samplers(src *rand.Rand) (sampler.Set, error) {
	var set sampler.Set
	var err error
	if set.X, err = theoretical(c.ShapeSizes.X, src); err != nil {
		return sampler.Set{}, invalid("shape_sizes.x: %v", err)
	}
	if set.Y, err = theoretical(c.ShapeSizes.Y, src); err != nil {
		return sampler.Set{}, invalid("shape_sizes.y: %v", err)
	}
	if set.Z, err = theoretical(c.ShapeSizes.Z, src); err != nil {
		return sampler.Set{}, invalid("shape_sizes.z: %v", err)
	}

	if path := c.LengthsPath(); path != "" {
		lengths, err := sampler.LoadEmpirical(path, src)
		if err != nil {
			return sampler.Set{}, fmt.Errorf("%w: drillholes.lengths_file: %w", ErrConfiguration, err)
		}
		set.DrillLength = lengths
	} else {
		lengths, err := theoretical(c.DrillHoles.LengthDistribution, src)
		if err != nil {
			return sampler.Set{}, invalid("drillholes.length_distribution: %v", err)
		}
		set.DrillLength = lengths
	}
	return set, nil
}

// Exporter resolves output_type against reg.
func (c Config) Exporter(reg *export.Registry) (export.Exporter, error) {
	exp, err := reg.Resolve(c.OutputType)
	if errors.Is(err, export.ErrUnknownExporter) {
		return nil, fmt.Errorf("%w: output_type: %w", ErrConfiguration, err)
	}
	return exp, err
}
