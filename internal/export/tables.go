package export

import "github.com/lucasvr/synthetic-mine-maker/internal/geom"

// table is one geometry collection of a floor, in artifact order.
type table struct {
	name string
	rows func(f Floor) []string
}

var tables = []table{
	{name: "mineworking", rows: func(f Floor) []string {
		s := f.MineWorking()
		if len(s) == 0 {
			return nil
		}
		return []string{s.WKT()}
	}},
	{name: "drillholes", rows: func(f Floor) []string {
		return lineRows(f.DrillHoles())
	}},
	{name: "multiline_drillholes", rows: func(f Floor) []string {
		holes := f.DrillHoles()
		if len(holes) == 0 {
			return nil
		}
		return []string{geom.MultiLineString(holes).WKT()}
	}},
	{name: "segments", rows: func(f Floor) []string {
		return lineRows(f.DrillSegments())
	}},
	{name: "geological_shapes", rows: func(f Floor) []string {
		return surfaceRows(f.Shapes())
	}},
	{name: "blockmodel", rows: func(f Floor) []string {
		return surfaceRows(f.BlockModels())
	}},
}

// TableNames lists the geometry collections every exporter writes.
func TableNames() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.name
	}
	return out
}

func lineRows(lines []geom.LineString) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.WKT())
	}
	return out
}

func surfaceRows(surfaces []geom.PolyhedralSurface) []string {
	out := make([]string, 0, len(surfaces))
	for _, s := range surfaces {
		out = append(out, s.WKT())
	}
	return out
}
