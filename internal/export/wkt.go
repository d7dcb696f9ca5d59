package export

import (
	"fmt"
	"io"
	"path/filepath"
)

// WKT writes one geometry per line as plain well-known text.
type WKT struct{}

func (WKT) Name() string      { return "wkt" }
func (WKT) Extension() string { return ".wkt" }

func (e WKT) Write(floorIndex int, floor Floor, dir string) error {
	dest := filepath.Join(dir, FileName(floorIndex, e.Extension()))
	return writeAtomic(dest, func(w io.Writer) error {
		for _, t := range tables {
			for _, row := range t.rows(floor) {
				if _, err := io.WriteString(w, row); err != nil {
					return fmt.Errorf("export.WKT write %s: %w", t.name, err)
				}
				if _, err := io.WriteString(w, "\n"); err != nil {
					return fmt.Errorf("export.WKT write %s: %w", t.name, err)
				}
			}
		}
		return nil
	})
}

