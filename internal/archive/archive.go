// Package archive creates the xz-compressed tar of the install prefix
// uploaded by the `upload` workflow.
package archive

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/errs"
)

// Driver creates xz-compressed tar archives of a directory tree by
// shelling out to the external `tar` binary. The standard library's
// archive/tar has no multithreaded xz writer, so the external binary's
// XZ_OPT=--threads=0 support is used instead.
type Driver struct{}

// Create archives srcDir into destPath (a .tar.xz path) using
// `tar --create --xz --file destPath srcDir` with XZ_OPT=--threads=0 -0
// added to the inherited environment.
func (Driver) Create(ctx context.Context, destPath, srcDir string) error {
	log.WithFields(log.Fields{"src": srcDir, "dest": destPath}).Debug("archiving prefix")

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return errors.Wrapf(err, "creating archive directory for %s", destPath)
	}

	cmd := exec.CommandContext(ctx, "tar", "--create", "--xz", "--file", destPath, srcDir)
	cmd.Env = append(os.Environ(), "XZ_OPT=--threads=0 -0")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(errs.ErrArchivingFailed, "tar %s: %v", srcDir, err)
	}

	if info, statErr := os.Stat(destPath); statErr == nil {
		log.WithFields(log.Fields{"dest": destPath, "bytes": info.Size()}).Debug("done archiving")
	}
	return nil
}
