package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite writes a floor into its own SQLite database file, one table per
// geometry collection.
type SQLite struct{}

func (SQLite) Name() string      { return "sqlite" }
func (SQLite) Extension() string { return ".sqlite" }

func (e SQLite) Write(floorIndex int, floor Floor, dir string) (err error) {
	dest := filepath.Join(dir, FileName(floorIndex, e.Extension()))
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("export.SQLite remove %s: %w", dest, err)
	}

	db, err := sql.Open("sqlite", dest)
	if err != nil {
		return fmt.Errorf("export.SQLite open %s: %w", dest, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export.SQLite close %s: %w", dest, cerr)
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("export.SQLite begin: %w", err)
	}
	for _, t := range tables {
		if err := insertTable(tx, floorIndex, t.name, t.rows(floor)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("export.SQLite write %s: %w", t.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export.SQLite commit: %w", err)
	}
	return nil
}

func insertTable(tx *sql.Tx, level int, name string, rows []string) error {
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, level INTEGER NOT NULL, geom TEXT NOT NULL)", name)
	if _, err := tx.Exec(create); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s(level, geom) VALUES (?, ?)", name))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.Exec(level, row); err != nil {
			return err
		}
	}
	return nil
}
