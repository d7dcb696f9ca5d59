package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lucasvr/synthetic-mine-maker/internal/quota"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
)

// ErrConfiguration marks every failure detected before generation starts:
// unreadable files, malformed or missing keys, and out-of-range values.
var ErrConfiguration = errors.New("configuration error")

// Bound is a numeric range endpoint. TOML integers, floats and numeric
// strings all decode into it.
type Bound float64

func (b *Bound) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*b = Bound(x)
	case float64:
		*b = Bound(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return fmt.Errorf("bound %q is not a number", x)
		}
		*b = Bound(f)
	default:
		return fmt.Errorf("bound has unsupported type %T", v)
	}
	return nil
}

type RangeConfig struct {
	Min Bound `toml:"min"`
	Max Bound `toml:"max"`
}

type DrillConfig struct {
	Min                Bound   `toml:"min"`
	Max                Bound   `toml:"max"`
	LengthsFile        string  `toml:"lengths_file"`
	LengthDistribution string  `toml:"length_distribution"`
	IntervalLength     float64 `toml:"interval_length"`
}

type GridConfig struct {
	Columns      int     `toml:"columns"`
	Rows         int     `toml:"rows"`
	CellHeight   float64 `toml:"cell_height"`
	CellWidth    float64 `toml:"cell_width"`
	LevelPadding float64 `toml:"level_padding"`
	MinEndpoints int     `toml:"min_endpoints"`
	MaxEndpoints int     `toml:"max_endpoints"`
}

type ShapeConfig struct {
	X         string  `toml:"x"`
	Y         string  `toml:"y"`
	Z         string  `toml:"z"`
	BlockSize float64 `toml:"block_size"`
}

// Config is one run configuration as read from disk.
type Config struct {
	Seed       uint64      `toml:"seed"`
	OutputType string      `toml:"output_type"`
	Floors     RangeConfig `toml:"floors"`
	Shapes     RangeConfig `toml:"shapes"`
	DrillHoles DrillConfig `toml:"drillholes"`
	Grid       GridConfig  `toml:"grid"`
	ShapeSizes ShapeConfig `toml:"shape_sizes"`

	// baseDir anchors relative file references.
	baseDir string
}

// required lists keys that have no sensible default.
var required = [][]string{
	{"floors", "min"}, {"floors", "max"},
	{"shapes", "min"}, {"shapes", "max"},
	{"drillholes", "min"}, {"drillholes", "max"},
}

// Default returns the values used for every optional key.
func Default() Config {
	return Config{
		OutputType: "wkt",
		DrillHoles: DrillConfig{IntervalLength: 10},
		Grid: GridConfig{
			Columns:      100,
			Rows:         45,
			CellHeight:   3,
			CellWidth:    4,
			LevelPadding: 25,
			MinEndpoints: 10,
			MaxEndpoints: 20,
		},
		ShapeSizes: ShapeConfig{
			X:         "uniform(10, 30)",
			Y:         "uniform(10, 30)",
			Z:         "uniform(5, 15)",
			BlockSize: 5,
		},
		baseDir: ".",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: load %s: %w", ErrConfiguration, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrConfiguration, path, strings.Join(keys, ", "))
	}
	for _, key := range required {
		if !md.IsDefined(key...) {
			return Config{}, fmt.Errorf("%w: %s: missing key %s", ErrConfiguration, path, strings.Join(key, "."))
		}
	}
	cfg.baseDir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	ranges := []struct {
		name string
		r    RangeConfig
	}{
		{"floors", c.Floors},
		{"shapes", c.Shapes},
		{"drillholes", RangeConfig{Min: c.DrillHoles.Min, Max: c.DrillHoles.Max}},
	}
	for _, entry := range ranges {
		if err := validateRange(entry.name, entry.r); err != nil {
			return err
		}
	}
	if c.Floors.Min < 1 {
		return invalid("floors.min must be >= 1, got %v", c.Floors.Min)
	}
	if c.Shapes.Min < 0 || c.DrillHoles.Min < 0 {
		return invalid("shape and drill hole bounds must be >= 0")
	}

	if strings.TrimSpace(c.OutputType) == "" {
		return invalid("output_type is empty")
	}

	g := c.Grid
	switch {
	case g.Columns < 1 || g.Rows < 1:
		return invalid("grid must be at least 1x1, got %dx%d", g.Columns, g.Rows)
	case !positive(g.CellWidth) || !positive(g.CellHeight):
		return invalid("grid cell size must be > 0, got %vx%v", g.CellWidth, g.CellHeight)
	case !positive(g.LevelPadding):
		return invalid("grid.level_padding must be > 0, got %v", g.LevelPadding)
	case g.MinEndpoints < 1:
		return invalid("grid.min_endpoints must be >= 1, got %d", g.MinEndpoints)
	case g.MaxEndpoints < g.MinEndpoints:
		return invalid("grid.max_endpoints %d < min_endpoints %d", g.MaxEndpoints, g.MinEndpoints)
	}

	d := c.DrillHoles
	hasFile := strings.TrimSpace(d.LengthsFile) != ""
	hasDist := strings.TrimSpace(d.LengthDistribution) != ""
	switch {
	case hasFile == hasDist:
		return invalid("exactly one of drillholes.lengths_file and drillholes.length_distribution must be set")
	case !positive(d.IntervalLength):
		return invalid("drillholes.interval_length must be > 0, got %v", d.IntervalLength)
	case !positive(c.ShapeSizes.BlockSize):
		return invalid("shape_sizes.block_size must be > 0, got %v", c.ShapeSizes.BlockSize)
	}

	descriptors := map[string]string{
		"shape_sizes.x": c.ShapeSizes.X,
		"shape_sizes.y": c.ShapeSizes.Y,
		"shape_sizes.z": c.ShapeSizes.Z,
	}
	if hasDist {
		descriptors["drillholes.length_distribution"] = d.LengthDistribution
	}
	for _, key := range slices.Sorted(maps.Keys(descriptors)) {
		if _, err := theoretical(descriptors[key], nil); err != nil {
			return invalid("%s: %v", key, err)
		}
	}
	return nil
}

// LengthsPath resolves drillholes.lengths_file against the config file's
// directory. It returns "" when a theoretical length distribution is used.
func (c Config) LengthsPath() string {
	p := strings.TrimSpace(c.DrillHoles.LengthsFile)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func validateRange(name string, r RangeConfig) error {
	lo, hi := float64(r.Min), float64(r.Max)
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return invalid("%s bounds must be finite", name)
	}
	if math.Abs(lo) > quota.MaxBound || math.Abs(hi) > quota.MaxBound {
		return invalid("%s bounds must lie within ±%d", name, int64(quota.MaxBound))
	}
	if lo > hi {
		return invalid("%s.min %v > %s.max %v", name, lo, name, hi)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func theoretical(raw string, src rand.Source) (*sampler.Theoretical, error) {
	desc, err := sampler.ParseDescriptor(raw)
	if err != nil {
		return nil, err
	}
	return sampler.NewTheoretical(desc, src)
}
