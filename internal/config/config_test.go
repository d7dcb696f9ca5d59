package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/mine"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
	"github.com/lucasvr/synthetic-mine-maker/internal/testutil/testlog"
)

const minimal = `
[floors]
min = 1
max = 4
[shapes]
min = 0
max = 10
[drillholes]
min = 5
max = 25
length_distribution = "norm(30, 4)"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMinimalUsesDefaults(t *testing.T) {
	testlog.Start(t)

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)
	require.Equal(t, "wkt", cfg.OutputType)
	require.Equal(t, uint64(0), cfg.Seed)
	require.Equal(t, RangeConfig{Min: 1, Max: 4}, cfg.Floors)
	require.Equal(t, Default().Grid, cfg.Grid)
	require.Equal(t, Default().ShapeSizes, cfg.ShapeSizes)
	require.Equal(t, 10.0, cfg.DrillHoles.IntervalLength)
	require.Empty(t, cfg.LengthsPath())
}

func TestLoadBoundsAcceptMixedTypes(t *testing.T) {
	testlog.Start(t)

	cfg, err := Load(writeConfig(t, `
seed = 77
output_type = "postgis"
[floors]
min = "2"
max = 5.5
[shapes]
min = 3
max = " 12 "
[drillholes]
min = 0.5
max = "40"
length_distribution = "expon[0, 12]"
`))
	require.NoError(t, err)
	require.Equal(t, uint64(77), cfg.Seed)
	require.Equal(t, "postgis", cfg.OutputType)
	require.Equal(t, RangeConfig{Min: 2, Max: 5.5}, cfg.Floors)
	require.Equal(t, RangeConfig{Min: 3, Max: 12}, cfg.Shapes)
	require.Equal(t, Bound(0.5), cfg.DrillHoles.Min)
	require.Equal(t, Bound(40), cfg.DrillHoles.Max)
}

func TestLoadRejects(t *testing.T) {
	testlog.Start(t)

	cases := map[string]string{
		"unknown key":        minimal + "\n[grid]\ncolumnz = 4\n",
		"missing floors.max": "[floors]\nmin = 1\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\nlength_distribution = \"norm(1, 1)\"\n",
		"inverted range":     "[floors]\nmin = 5\nmax = 2\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\nlength_distribution = \"norm(1, 1)\"\n",
		"zero floors":        "[floors]\nmin = 0\nmax = 2\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\nlength_distribution = \"norm(1, 1)\"\n",
		"bound too large":    "[floors]\nmin = 1\nmax = 1e19\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\nlength_distribution = \"norm(1, 1)\"\n",
		"bound not numeric":  "[floors]\nmin = \"many\"\nmax = 2\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\nlength_distribution = \"norm(1, 1)\"\n",
		"no length source":   "[floors]\nmin = 1\nmax = 2\n[shapes]\nmin = 0\nmax = 1\n[drillholes]\nmin = 0\nmax = 1\n",
		"two length sources": minimal + "lengths_file = \"l.txt\"\n",
		"unknown family":     minimal + "\n[shape_sizes]\nx = \"zipfish(2)\"\n",
		"bad descriptor":     minimal + "\n[shape_sizes]\ny = \"norm(1, 2\"\n",
		"empty grid":         minimal + "\n[grid]\nrows = 0\n",
		"endpoint order":     minimal + "\n[grid]\nmin_endpoints = 5\nmax_endpoints = 4\n",
		"zero block size":    minimal + "\n[shape_sizes]\nblock_size = 0\n",
		"not toml":           "floors = [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestValidateRejectsOversizedBounds(t *testing.T) {
	testlog.Start(t)

	cfg := Default()
	cfg.Floors = RangeConfig{Min: 1, Max: 3}
	cfg.Shapes = RangeConfig{Min: 0, Max: 1e19}
	cfg.DrillHoles.LengthDistribution = "norm(30, 4)"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	require.Contains(t, err.Error(), "shapes bounds must lie within")
}

func TestLoadMissingFile(t *testing.T) {
	testlog.Start(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLengthsFileResolvesAgainstConfigDir(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "lengths.txt"), []byte("12.5\n30\n\n44.25\n"), 0o600))

	path := filepath.Join(dir, "minegen.toml")
	body := `
[floors]
min = 1
max = 2
[shapes]
min = 0
max = 1
[drillholes]
min = 0
max = 1
lengths_file = "data/lengths.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "data", "lengths.txt"), cfg.LengthsPath())

	set, err := cfg.Samplers(random.New(3))
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	emp, ok := set.DrillLength.(*sampler.Empirical)
	require.True(t, ok)
	require.Equal(t, 3, emp.Len())
	for i := 0; i < 100; i++ {
		v := set.DrillLength.Sample()
		require.GreaterOrEqual(t, v, 12.5)
		require.LessOrEqual(t, v, 44.25)
	}
}

func TestSamplersMissingLengthsFile(t *testing.T) {
	testlog.Start(t)

	cfg, err := Load(writeConfig(t, `
[floors]
min = 1
max = 2
[shapes]
min = 0
max = 1
[drillholes]
min = 0
max = 1
lengths_file = "nowhere.txt"
`))
	require.NoError(t, err)
	_, err = cfg.Samplers(random.New(1))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestConversions(t *testing.T) {
	testlog.Start(t)

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	require.Equal(t, pipeline.Settings{
		OutputDir: "out",
		Floors:    pipeline.Range{Min: 1, Max: 4},
		Shapes:    pipeline.Range{Min: 0, Max: 10},
		Drills:    pipeline.Range{Min: 5, Max: 25},
		Grid:      pipeline.GridExtent{Columns: 100, Rows: 45},
	}, cfg.Settings("out"))

	require.Equal(t, mine.DefaultConfig(), cfg.MineConfig())

	set, err := cfg.Samplers(random.New(5))
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	_, ok := set.DrillLength.(*sampler.Theoretical)
	require.True(t, ok)
}

func TestExporterResolution(t *testing.T) {
	testlog.Start(t)

	cfg := Default()
	reg := export.NewDefaultRegistry()
	for _, name := range []string{"wkt", "postgis", "sqlite"} {
		cfg.OutputType = name
		exp, err := cfg.Exporter(reg)
		require.NoError(t, err)
		require.Equal(t, name, exp.Name())
	}

	cfg.OutputType = "shapefile"
	_, err := cfg.Exporter(reg)
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorIs(t, err, export.ErrUnknownExporter)
}

func TestTemplateLoads(t *testing.T) {
	testlog.Start(t)

	path := filepath.Join(t.TempDir(), "minegen.toml")
	require.NoError(t, WriteTemplate(path, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, RangeConfig{Min: 2, Max: 6}, cfg.Floors)
	require.Equal(t, "lognorm(0.5, 0, 30)", cfg.DrillHoles.LengthDistribution)

	require.Error(t, WriteTemplate(path, false))
	require.NoError(t, WriteTemplate(path, true))
}
