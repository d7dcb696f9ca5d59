package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
	"github.com/lucasvr/synthetic-mine-maker/internal/quota"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/testutil/scripted"
	"github.com/lucasvr/synthetic-mine-maker/internal/testutil/testlog"
)

type stubFloor struct {
	index  int
	blocks int
}

func (f stubFloor) Index() int                            { return f.index }
func (f stubFloor) BlockCount() int                       { return f.blocks }
func (f stubFloor) MineWorking() geom.PolyhedralSurface   { return nil }
func (f stubFloor) DrillHoles() []geom.LineString         { return nil }
func (f stubFloor) DrillSegments() []geom.LineString      { return nil }
func (f stubFloor) Shapes() []geom.PolyhedralSurface      { return nil }
func (f stubFloor) BlockModels() []geom.PolyhedralSurface { return nil }

type stubGenerator struct {
	requests []FloorRequest
	failAt   int
	err      error
	nilFloor bool
}

func (g *stubGenerator) Create(req FloorRequest) (export.Floor, error) {
	g.requests = append(g.requests, req)
	if g.err != nil && req.Index == g.failAt {
		return nil, g.err
	}
	if g.nilFloor {
		return nil, nil
	}
	return stubFloor{index: req.Index, blocks: 10*(req.Index+1) + req.ShapeQuota}, nil
}

// fileExporter writes a marker file per floor so tests can see what landed
// on disk.
type fileExporter struct {
	indexes []int
	failAt  int
	err     error
}

func (e *fileExporter) Write(idx int, floor export.Floor, dir string) error {
	e.indexes = append(e.indexes, idx)
	if e.err != nil && idx == e.failAt {
		return e.err
	}
	return os.WriteFile(filepath.Join(dir, export.FileName(idx, ".wkt")), []byte("POINTZ (0 0 0)\n"), 0o644)
}

func scenarioSettings(dir string) Settings {
	return Settings{
		OutputDir: dir,
		Floors:    Range{Min: 3, Max: 3},
		Shapes:    Range{Min: 1, Max: 1},
		Drills:    Range{Min: 30, Max: 30},
		Grid:      GridExtent{Columns: 10, Rows: 5},
	}
}

// scenarioSource scripts three floors, one shape unit and thirty drill units.
func scenarioSource() *scripted.Source {
	return &scripted.Source{
		Floats: []float64{0, 0, 0},
		Ints:   []int{0, 1, 4, 9, 7, 3},
	}
}

func TestNewPlanDrawOrder(t *testing.T) {
	testlog.Start(t)

	src := scenarioSource()
	plan, err := NewPlan(src, scenarioSettings(t.TempDir()))
	require.NoError(t, err)

	want := Plan{
		FloorCount:  3,
		ShapeQuotas: quota.Result{0, 0, 1},
		DrillQuotas: quota.Result{5, 5, 20},
		Shaft:       Coord{Col: 7, Row: 3},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}

	wantCalls := []string{
		"Float64",
		"Float64", "IntN(1)", "IntN(2)",
		"Float64", "IntN(28)", "IntN(29)",
		"IntN(10)", "IntN(5)",
	}
	require.Equal(t, wantCalls, src.Calls())
}

func TestNewPlanRejectsEmptyMine(t *testing.T) {
	testlog.Start(t)

	set := scenarioSettings(t.TempDir())
	set.Floors = Range{Min: 0, Max: 1}
	_, err := NewPlan(random.New(1), set)
	require.ErrorIs(t, err, quota.ErrInvalidArgument)
}

func TestNewPlanRejectsBadInputs(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{"inverted floors", func(s *Settings) { s.Floors = Range{Min: 5, Max: 2} }, quota.ErrInvalidArgument},
		{"inverted shapes", func(s *Settings) { s.Shapes = Range{Min: 9, Max: 1} }, quota.ErrInvalidArgument},
		{"negative drills", func(s *Settings) { s.Drills = Range{Min: -4, Max: -2} }, quota.ErrInvalidArgument},
		{"empty grid", func(s *Settings) { s.Grid.Rows = 0 }, ErrInvalidSettings},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := scenarioSettings(t.TempDir())
			tc.mutate(&set)
			_, err := NewPlan(random.New(7), set)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRunScenario(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level_07.sql"), []byte("stale"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("keep"), 0o644))

	gen := &stubGenerator{}
	exp := &fileExporter{}
	summary, err := Run(scenarioSettings(dir), Components{Random: scenarioSource(), Generator: gen, Exporter: exp})
	require.NoError(t, err)

	require.NotEmpty(t, summary.RunID)
	require.Equal(t, 3, summary.FloorCount)
	require.Equal(t, quota.Result{0, 0, 1}, summary.ShapeQuotas)
	require.Equal(t, quota.Result{5, 5, 20}, summary.DrillQuotas)
	require.Equal(t, 1, summary.ShapeTotal)
	require.Equal(t, 30, summary.DrillTotal)
	require.Equal(t, []int{10, 20, 31}, summary.FloorBlocks)
	require.Equal(t, 61, summary.TotalBlocks)
	require.Equal(t, 1, summary.Removed)

	want := []FloorRequest{
		{Index: 0, FloorCount: 3, ShapeQuota: 0, DrillQuota: 5, Shaft: Coord{Col: 7, Row: 3}},
		{Index: 1, FloorCount: 3, ShapeQuota: 0, DrillQuota: 5, Shaft: Coord{Col: 7, Row: 3}},
		{Index: 2, FloorCount: 3, ShapeQuota: 1, DrillQuota: 20, Shaft: Coord{Col: 7, Row: 3}},
	}
	if diff := cmp.Diff(want, gen.requests); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []int{0, 1, 2}, exp.indexes)
	require.Equal(t, []string{"keep.txt", "level_00.wkt", "level_01.wkt", "level_02.wkt"}, listDir(t, dir))
}

func TestRunIsIdempotentOnOutputDir(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	for range 2 {
		_, err := Run(scenarioSettings(dir), Components{
			Random:    scenarioSource(),
			Generator: &stubGenerator{},
			Exporter:  &fileExporter{},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"level_00.wkt", "level_01.wkt", "level_02.wkt"}, listDir(t, dir))
	}
}

func TestRunAbortsOnGeneratorFailure(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	boom := errors.New("corridor collapsed")
	gen := &stubGenerator{failAt: 1, err: boom}
	exp := &fileExporter{}

	summary, err := Run(scenarioSettings(dir), Components{Random: scenarioSource(), Generator: gen, Exporter: exp})
	require.ErrorIs(t, err, boom)

	var collab *CollaboratorError
	require.ErrorAs(t, err, &collab)
	require.Equal(t, "generate", collab.Stage)
	require.Equal(t, 1, collab.Floor)
	require.Equal(t, Summary{}, summary)

	require.Len(t, gen.requests, 2)
	require.Equal(t, []int{0}, exp.indexes)
	require.Equal(t, []string{"level_00.wkt"}, listDir(t, dir))
}

func TestRunAbortsOnExporterFailure(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	boom := errors.New("disk full")
	gen := &stubGenerator{}
	exp := &fileExporter{failAt: 2, err: boom}

	_, err := Run(scenarioSettings(dir), Components{Random: scenarioSource(), Generator: gen, Exporter: exp})
	require.ErrorIs(t, err, boom)

	var collab *CollaboratorError
	require.ErrorAs(t, err, &collab)
	require.Equal(t, "export", collab.Stage)
	require.Equal(t, 2, collab.Floor)
	require.Equal(t, "floor 2: export: disk full", err.Error())

	require.Len(t, gen.requests, 3)
	require.Equal(t, []string{"level_00.wkt", "level_01.wkt"}, listDir(t, dir))
}

func TestRunRejectsNilFloor(t *testing.T) {
	testlog.Start(t)

	_, err := Run(scenarioSettings(t.TempDir()), Components{
		Random:    scenarioSource(),
		Generator: &stubGenerator{nilFloor: true},
		Exporter:  &fileExporter{},
	})
	require.ErrorIs(t, err, ErrNilFloor)
}

func TestRunRequiresComponents(t *testing.T) {
	testlog.Start(t)

	_, err := Run(scenarioSettings(t.TempDir()), Components{Random: random.New(1), Exporter: &fileExporter{}})
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestRunPlanFailureLeavesNoFloors(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	set := scenarioSettings(dir)
	set.Floors = Range{Min: 0, Max: 0}
	gen := &stubGenerator{}

	_, err := Run(set, Components{Random: random.New(3), Generator: gen, Exporter: &fileExporter{}})
	require.ErrorIs(t, err, quota.ErrInvalidArgument)
	require.Empty(t, gen.requests)
	require.Empty(t, listDir(t, dir))
}

func TestRunSeededInvariants(t *testing.T) {
	testlog.Start(t)

	set := Settings{
		OutputDir: t.TempDir(),
		Floors:    Range{Min: 1, Max: 8},
		Shapes:    Range{Min: 0, Max: 12},
		Drills:    Range{Min: 5, Max: 60},
		Grid:      GridExtent{Columns: 100, Rows: 45},
	}
	for seed := uint64(1); seed <= 25; seed++ {
		gen := &stubGenerator{}
		summary, err := Run(set, Components{Random: random.New(seed), Generator: gen, Exporter: &fileExporter{}})
		require.NoError(t, err)

		require.Len(t, summary.ShapeQuotas, summary.FloorCount)
		require.Len(t, summary.DrillQuotas, summary.FloorCount)
		require.Equal(t, summary.ShapeTotal, summary.ShapeQuotas.Sum())
		require.Equal(t, summary.DrillTotal, summary.DrillQuotas.Sum())
		require.Len(t, gen.requests, summary.FloorCount)

		blocks := 0
		for i, req := range gen.requests {
			require.Equal(t, i, req.Index)
			require.Equal(t, summary.Shaft, req.Shaft)
			blocks += summary.FloorBlocks[i]
		}
		require.Equal(t, blocks, summary.TotalBlocks)
		require.GreaterOrEqual(t, summary.Shaft.Col, 0)
		require.Less(t, summary.Shaft.Col, 100)
		require.GreaterOrEqual(t, summary.Shaft.Row, 0)
		require.Less(t, summary.Shaft.Row, 45)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
