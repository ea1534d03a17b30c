package codebase

import (
	"crypto/sha1" // nolint:gosec // fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/fsutil"
)

// CodeBase is a single directory under the monorepository root with its
// own metadata.yaml.
type CodeBase struct {
	Name     string
	Root     string
	Metadata Metadata

	// Hash is the raw 20-byte SHA-1 fingerprint.
	Hash [sha1.Size]byte

	// ManifestPath is <metadata_prefix>/artifacts-<name>-<hashhex>.json.
	ManifestPath string
}

// HashHex returns the fingerprint's hex form, the manifest key.
func (c *CodeBase) HashHex() string {
	return hex.EncodeToString(c.Hash[:])
}

// newCodeBase loads metadata and computes the fingerprint for name,
// recursing into the registry for each declared dependency in order.
// The registry has already marked name gray before calling this, so a
// cycle among dependencies surfaces as ErrCyclicDependency from the
// recursive Get call.
func newCodeBase(r *Registry, name string) (*CodeBase, error) {
	root := r.codeBaseRoot(name)

	meta, err := loadMetadata(root)
	if err != nil {
		return nil, err
	}

	h := sha1.New() // nolint:gosec
	h.Write([]byte(r.ctx.Prefix))

	for _, depName := range meta.Dependencies {
		dep, err := r.Get(depName)
		if err != nil {
			return nil, errors.Wrapf(err, "dependency %q of %q", depName, name)
		}
		h.Write(dep.Hash[:])
	}

	if err := hashSourceTree(h, root); err != nil {
		return nil, errors.Wrapf(err, "hashing source of %q", name)
	}

	var digest [sha1.Size]byte
	copy(digest[:], h.Sum(nil))

	cb := &CodeBase{
		Name:     name,
		Root:     root,
		Metadata: meta,
		Hash:     digest,
	}
	cb.ManifestPath = filepath.Join(r.ctx.MetadataPrefix,
		fmt.Sprintf("artifacts-%s-%s.json", name, cb.HashHex()))

	return cb, nil
}

// hashSourceTree absorbs every source file under root into h, in sorted
// path order. Symlinks are not followed; their path and link target are
// hashed in place of mode+content.
func hashSourceTree(h hash.Hash, root string) error {
	files, err := fsutil.SortedFileList(root)
	if err != nil {
		return err
	}

	for _, name := range files {
		info, err := os.Lstat(name)
		if err != nil {
			return errors.Wrapf(err, "stat %s", name)
		}

		h.Write([]byte(name))

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(name)
			if err != nil {
				return errors.Wrapf(err, "reading symlink %s", name)
			}
			h.Write([]byte(target))
			continue
		}

		h.Write([]byte(fmt.Sprintf("%d", fsutil.RawMode(info))))
		if err := fsutil.HashFile(h, name); err != nil {
			return err
		}
	}
	return nil
}
