package cas

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/errs"
	"github.com/coreos/monorepo/internal/fsutil"
)

// casDirName is the fixed subdirectory of metadata_prefix holding CAS
// entries.
const casDirName = "cas"

// CasDir returns <metadataPrefix>/cas.
func CasDir(metadataPrefix string) string {
	return filepath.Join(metadataPrefix, casDirName)
}

// entryName forms the CAS filename "<hash>-<mode>" for a file record.
// Distinct modes (including the file-type bits in the raw POSIX mode,
// see fsutil.RawMode) deliberately produce distinct CAS entries even
// for identical content.
func entryName(rec fsutil.FileRecord) string {
	return fmt.Sprintf("%s-%d", rec.Hash, rec.Mode)
}

// Restore attempts to materialize manifestPath's recorded outputs by
// hard-linking from the CAS and recreating symlinks. It returns
// (false, nil, nil) on a cache miss (no manifest file); any other error
// is fatal.
func Restore(metadataPrefix, manifestPath string) (hit bool, m *Manifest, err error) {
	m, err = Load(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}

	casDir := CasDir(metadataPrefix)

	for outputPath, rec := range m.Files {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return false, nil, errors.Wrapf(err, "creating parent of %s", outputPath)
		}

		casPath := filepath.Join(casDir, entryName(rec))
		if err := os.Link(casPath, outputPath); err != nil {
			if !os.IsExist(err) {
				return false, nil, errors.Wrapf(errs.ErrCasLinkOther, "linking %s to %s: %v", casPath, outputPath, err)
			}
		}

		if err := os.Chmod(outputPath, os.FileMode(rec.Mode)); err != nil {
			return false, nil, errors.Wrapf(err, "chmod %s", outputPath)
		}
	}

	for linkPath, target := range m.SymbolicLinks {
		if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
			return false, nil, errors.Wrapf(err, "creating parent of %s", linkPath)
		}
		if err := os.Symlink(target, linkPath); err != nil {
			if !os.IsExist(err) {
				return false, nil, errors.Wrapf(err, "symlinking %s -> %s", linkPath, target)
			}
		}
	}

	return true, m, nil
}

// Populate hard-links every output file in files into the CAS, skipping
// entries that already exist there. Idempotent and order-insensitive.
func Populate(metadataPrefix string, files map[string]fsutil.FileRecord) error {
	casDir := CasDir(metadataPrefix)
	if err := os.MkdirAll(casDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating CAS dir %s", casDir)
	}

	existing, err := os.ReadDir(casDir)
	if err != nil {
		return errors.Wrapf(err, "listing CAS dir %s", casDir)
	}
	present := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		present[e.Name()] = struct{}{}
	}

	for outputPath, rec := range files {
		name := entryName(rec)
		if _, ok := present[name]; ok {
			continue
		}

		casPath := filepath.Join(casDir, name)
		if err := os.Link(outputPath, casPath); err != nil {
			if !os.IsExist(err) {
				return errors.Wrapf(err, "linking %s into CAS as %s", outputPath, name)
			}
		}
		present[name] = struct{}{}
	}
	return nil
}
