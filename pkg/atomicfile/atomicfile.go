// Package atomicfile replaces files on disk via temp file + rename so that
// readers never observe a partially written record.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// WriteFile writes data to a temporary file in the same directory as path
// and renames it into place. The parent directory must already exist.
func WriteFile(path string, data []byte, perm os.FileMode) (retErr error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("atomic write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if retErr != nil {
			// The rename never happened; the temp file is garbage.
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				retErr = multierr.Append(retErr, rmErr)
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Append(
			fmt.Errorf("atomic write %s: write: %w", path, err),
			tmp.Close(),
		)
	}
	if err := tmp.Chmod(perm); err != nil {
		return multierr.Append(
			fmt.Errorf("atomic write %s: chmod: %w", path, err),
			tmp.Close(),
		)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write %s: close: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic write %s: rename: %w", path, err)
	}
	return nil
}
