package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// tempPrefix names in-flight artifacts. PrepareOutputDir removes leftovers
// from interrupted runs.
const tempPrefix = ".tmp-"

// writeAtomic streams fill into a temp file next to dest and renames it into
// place, so readers never observe a half-written artifact.
func writeAtomic(dest string, fill func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("export: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err = fill(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("export: flush %s: %w", dest, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("export: sync %s: %w", dest, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", dest, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("export: chmod %s: %w", dest, err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("export: rename %s: %w", dest, err)
	}
	return nil
}
