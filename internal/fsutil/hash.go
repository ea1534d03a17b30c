// Package fsutil provides the recursive directory walks, file hashing,
// mode manipulation and symlink handling shared by the fingerprinter and
// the artifact cache.
package fsutil

import (
	"crypto/sha1" // nolint:gosec // fingerprint/content-hash, not a security boundary
	"hash"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// chunkSize is the read buffer used while streaming file contents into
// a hash.Hash.
const chunkSize = 16 * 1024

// HashFile streams the contents of name into h in chunkSize pieces. It
// does not return a digest; callers read h.Sum(nil) once all inputs for
// the current fingerprint have been absorbed.
func HashFile(h hash.Hash, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening %s for hashing", name)
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return errors.Wrapf(werr, "hashing %s", name)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", name)
		}
	}
}

// FileSHA1Hex returns the hex-encoded SHA-1 digest of a regular file's
// contents.
func FileSHA1Hex(name string) (string, error) {
	h := sha1.New() // nolint:gosec
	if err := HashFile(h, name); err != nil {
		return "", err
	}
	return hexDigest(h), nil
}

func hexDigest(h hash.Hash) string {
	sum := h.Sum(nil)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}

// SortedFileList walks root recursively and returns every regular file
// and symlink under it (directories are not included), sorted ascending
// by full path string. The walk does not follow symlinks: a symlink is
// reported as itself, not resolved.
func SortedFileList(root string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}
	sort.Strings(out)
	return out, nil
}
