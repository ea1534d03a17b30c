package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalUploader copies the archive into ~/monorepo_artifacts/.
type LocalUploader struct {
	// HomeDir overrides os.UserHomeDir for testing; empty uses the
	// real home directory.
	HomeDir string
}

// Upload implements Uploader.
func (u *LocalUploader) Upload(_ context.Context, archivePath string) error {
	home := u.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "resolving home directory")
		}
		home = h
	}

	artifactDir := filepath.Join(home, "monorepo_artifacts")
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", artifactDir)
	}

	dest := filepath.Join(artifactDir, filepath.Base(archivePath))
	if err := copyFile(archivePath, dest); err != nil {
		return errors.Wrapf(err, "copying %s to %s", archivePath, dest)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
