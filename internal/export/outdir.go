package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// staleExtensions are removed before a run. Anything else in the directory
// is left alone.
var staleExtensions = map[string]bool{
	".sql": true,
	".wkt": true,
}

// PrepareOutputDir creates dir when missing and removes stale .sql and .wkt
// files from it, along with temp files left by an interrupted write. It
// returns the number of files removed.
func PrepareOutputDir(dir string) (int, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return 0, fmt.Errorf("export: missing output directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("export: create output directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("export: read output directory: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !isStale(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("export: remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func isStale(name string) bool {
	return staleExtensions[filepath.Ext(name)] || strings.HasPrefix(name, tempPrefix)
}
