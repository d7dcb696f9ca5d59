package pipeline_test

import (
	"bufio"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/mine"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
	"github.com/lucasvr/synthetic-mine-maker/internal/testutil/testlog"
)

func newSamplers(t *testing.T, src *rand.Rand) sampler.Set {
	t.Helper()
	build := func(raw string) sampler.Sampler {
		desc, err := sampler.ParseDescriptor(raw)
		require.NoError(t, err)
		s, err := sampler.NewTheoretical(desc, src)
		require.NoError(t, err)
		return s
	}
	return sampler.Set{
		X:           build("uniform(5, 10)"),
		Y:           build("uniform(5, 10)"),
		Z:           build("uniform(3, 4)"),
		DrillLength: build("lognorm(0.4, 0, 25)"),
	}
}

func TestRunGeneratesEveryFloor(t *testing.T) {
	testlog.Start(t)

	for _, name := range []string{"wkt", "postgis", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			src := random.New(42)
			cfg := mine.DefaultConfig()
			cfg.Columns, cfg.Rows = 30, 20
			cfg.MinEndpoints, cfg.MaxEndpoints = 3, 6

			gen, err := mine.NewGenerator(cfg, newSamplers(t, src), src)
			require.NoError(t, err)
			exp, err := export.NewDefaultRegistry().Resolve(name)
			require.NoError(t, err)

			dir := t.TempDir()
			set := pipeline.Settings{
				OutputDir: dir,
				Floors:    pipeline.Range{Min: 2, Max: 5},
				Shapes:    pipeline.Range{Min: 1, Max: 6},
				Drills:    pipeline.Range{Min: 4, Max: 20},
				Grid:      pipeline.GridExtent{Columns: cfg.Columns, Rows: cfg.Rows},
			}
			summary, err := pipeline.Run(set, pipeline.Components{Random: src, Generator: gen, Exporter: exp})
			require.NoError(t, err)
			require.GreaterOrEqual(t, summary.FloorCount, 2)
			require.Less(t, summary.FloorCount, 5)

			blocks := 0
			for i := 0; i < summary.FloorCount; i++ {
				_, err := os.Stat(filepath.Join(dir, export.FileName(i, exp.Extension())))
				require.NoError(t, err)
				blocks += summary.FloorBlocks[i]
			}
			require.Equal(t, blocks, summary.TotalBlocks)
			require.Positive(t, summary.TotalBlocks)
		})
	}
}

func TestRunWKTLinesAreGeometries(t *testing.T) {
	testlog.Start(t)

	src := random.New(9)
	cfg := mine.DefaultConfig()
	cfg.Columns, cfg.Rows = 20, 12
	cfg.MinEndpoints, cfg.MaxEndpoints = 2, 4

	gen, err := mine.NewGenerator(cfg, newSamplers(t, src), src)
	require.NoError(t, err)

	dir := t.TempDir()
	set := pipeline.Settings{
		OutputDir: dir,
		Floors:    pipeline.Range{Min: 1, Max: 1},
		Shapes:    pipeline.Range{Min: 2, Max: 2},
		Drills:    pipeline.Range{Min: 3, Max: 3},
		Grid:      pipeline.GridExtent{Columns: cfg.Columns, Rows: cfg.Rows},
	}
	_, err = pipeline.Run(set, pipeline.Components{Random: src, Generator: gen, Exporter: export.WKT{}})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "level_00.wkt"))
	require.NoError(t, err)
	defer f.Close()

	prefixes := []string{"POLYHEDRALSURFACEZ", "LINESTRINGZ", "MULTILINESTRINGZ"}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<26)
	lines := 0
	for sc.Scan() {
		line := sc.Text()
		ok := false
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				ok = true
				break
			}
		}
		require.Truef(t, ok, "unexpected geometry %.40q", line)
		lines++
	}
	require.NoError(t, sc.Err())
	require.Positive(t, lines)
}
