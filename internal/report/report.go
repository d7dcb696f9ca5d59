// Package report renders a finished run for people and for tooling.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
)

// ManifestName is the manifest file written next to the floor artifacts.
const ManifestName = "run.toml"

// Print writes the run summary shown at the end of a CLI run.
func Print(w io.Writer, s pipeline.Summary) error {
	// Lists stay ungrouped so a separator never reads as a second entry.
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w,
		"floors: %d\nshapes per floor: %s (total %d)\ndrill holes per floor: %s (total %d)\ntotal blocks: %d\n",
		s.FloorCount,
		fmt.Sprint([]int(s.ShapeQuotas)), s.ShapeTotal,
		fmt.Sprint([]int(s.DrillQuotas)), s.DrillTotal,
		s.TotalBlocks,
	)
	return err
}

// Manifest records what produced an output directory.
type Manifest struct {
	RunID       string    `toml:"run_id"`
	Seed        string    `toml:"seed"`
	OutputType  string    `toml:"output_type"`
	ConfigPath  string    `toml:"config_path"`
	GeneratedAt time.Time `toml:"generated_at"`
	Elapsed     string    `toml:"elapsed"`
	Floors      int       `toml:"floors"`
	Shaft       []int     `toml:"shaft"`
	ShapeQuotas []int     `toml:"shape_quotas"`
	DrillQuotas []int     `toml:"drill_quotas"`
	FloorBlocks []int     `toml:"floor_blocks"`
	ShapeTotal  int       `toml:"shape_total"`
	DrillTotal  int       `toml:"drill_total"`
	TotalBlocks int       `toml:"total_blocks"`
}

// NewManifest captures s. The seed is kept as a decimal string because TOML
// integers are signed 64-bit.
func NewManifest(s pipeline.Summary, seed uint64, outputType, configPath string) Manifest {
	return Manifest{
		RunID:       s.RunID,
		Seed:        strconv.FormatUint(seed, 10),
		OutputType:  outputType,
		ConfigPath:  configPath,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Elapsed:     s.Duration.Round(time.Millisecond).String(),
		Floors:      s.FloorCount,
		Shaft:       []int{s.Shaft.Col, s.Shaft.Row},
		ShapeQuotas: s.ShapeQuotas,
		DrillQuotas: s.DrillQuotas,
		FloorBlocks: s.FloorBlocks,
		ShapeTotal:  s.ShapeTotal,
		DrillTotal:  s.DrillTotal,
		TotalBlocks: s.TotalBlocks,
	}
}

// WriteManifest writes m to dir/run.toml, replacing any previous manifest.
func WriteManifest(dir string, m Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}
