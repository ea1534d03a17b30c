package fsutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// noWriteMask clears the write bit for user, group and other.
const noWriteMask = ^os.FileMode(0o222)

// MakeTreeReadOnly recursively clears the write bits (user, group,
// other) of every regular file under prefix. Symbolic links are
// skipped: os.Chmod on a symlink path would affect its target, which
// is not the intent here.
func MakeTreeReadOnly(prefix string) error {
	return filepath.Walk(prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		newMode := info.Mode() & noWriteMask
		if newMode == info.Mode() {
			return nil
		}
		if err := os.Chmod(path, newMode); err != nil {
			return errors.Wrapf(err, "clearing write bits on %s", path)
		}
		return nil
	})
}
