package fsutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileRecord is the (content hash, mode) pair recorded for a regular
// output file, matching the manifest's "files" map shape. Mode is the
// raw POSIX st_mode (see RawMode), not Go's os.FileMode encoding.
type FileRecord struct {
	Hash string
	Mode uint32
}

// EnumerateOutputs walks prefix recursively: regular files are
// content-hashed and mode-recorded, symbolic links are recorded as
// path -> target. Directories are not recorded.
func EnumerateOutputs(prefix string) (files map[string]FileRecord, symlinks map[string]string, err error) {
	files = map[string]FileRecord{}
	symlinks = map[string]string{}

	walkErr := filepath.Walk(prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return errors.Wrapf(err, "reading symlink %s", path)
			}
			symlinks[path] = target
			return nil
		}
		digest, err := FileSHA1Hex(path)
		if err != nil {
			return err
		}
		files[path] = FileRecord{Hash: digest, Mode: RawMode(info)}
		return nil
	})
	if walkErr != nil {
		return nil, nil, errors.Wrapf(walkErr, "enumerating outputs under %s", prefix)
	}
	return files, symlinks, nil
}
