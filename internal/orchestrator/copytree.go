package orchestrator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// copyTree clones src into dst, preserving mode bits and symbolic
// links. This keeps the hashed source tree untouched so building
// never changes the fingerprint computed for it.
//
// Directories are created permissively (0o755) during the walk and have
// their recorded mode applied only afterward, innermost first: fixing a
// read-only directory's mode before its children are copied would block
// the writes that populate it.
func copyTree(src, dst string) error {
	type dirMode struct {
		path string
		mode os.FileMode
	}
	var dirModes []dirMode

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, "relativizing %s", path)
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return errors.Wrapf(err, "reading symlink %s", path)
			}
			return os.Symlink(linkTarget, target)
		case info.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			dirModes = append(dirModes, dirMode{target, info.Mode().Perm()})
			return nil
		default:
			return copyFileWithMode(path, target, info.Mode())
		}
	})
	if err != nil {
		return err
	}

	for i := len(dirModes) - 1; i >= 0; i-- {
		if err := os.Chmod(dirModes[i].path, dirModes[i].mode); err != nil {
			return errors.Wrapf(err, "restoring mode on %s", dirModes[i].path)
		}
	}
	return nil
}

func copyFileWithMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "creating parent of %s", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return nil
}
