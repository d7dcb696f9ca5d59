package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Schema is the PostgreSQL schema holding every generated table.
const Schema = "synthetic_mine"

// PostGIS writes a SQL script that loads a floor into PostGIS.
type PostGIS struct{}

func (PostGIS) Name() string      { return "postgis" }
func (PostGIS) Extension() string { return ".sql" }

func (e PostGIS) Write(floorIndex int, floor Floor, dir string) error {
	dest := filepath.Join(dir, FileName(floorIndex, e.Extension()))
	return writeAtomic(dest, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "-- synthetic mine level %02d\nCREATE SCHEMA IF NOT EXISTS %s;\n", floorIndex, Schema); err != nil {
			return err
		}
		for _, t := range tables {
			if err := writeTable(w, floorIndex, t.name, t.rows(floor)); err != nil {
				return fmt.Errorf("export.PostGIS write %s: %w", t.name, err)
			}
		}
		return nil
	})
}

func writeTable(w io.Writer, level int, name string, rows []string) error {
	qualified := Schema + "." + name
	if _, err := fmt.Fprintf(w, "CREATE TABLE IF NOT EXISTS %s(id bigserial, level integer, geom geometry(GeometryZ));\n", qualified); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "INSERT INTO %s(level, geom) VALUES\n", qualified); err != nil {
		return err
	}
	for i, row := range rows {
		terminator := ","
		if i == len(rows)-1 {
			terminator = ";"
		}
		if _, err := fmt.Fprintf(w, "(%d, ST_GeomFromText('%s'))%s\n", level, quoteLiteral(row), terminator); err != nil {
			return err
		}
	}
	return nil
}

func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
