// Package monorepo locates the monorepository root and the name of the
// codebase the working directory currently sits in.
package monorepo

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/errs"
)

// FindRoot walks up from dir looking for an ancestor directory literally
// named "monorepository". It returns the monorepository root and the
// name of the codebase directory immediately beneath it on the path
// from dir: the codebase is the child of "monorepository" that lies on
// the path to dir, not necessarily dir itself.
func FindRoot(dir string) (root string, codeBaseName string, err error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", "", errors.Wrap(err, "resolving working directory")
	}

	for current != string(filepath.Separator) && current != "." {
		parent := filepath.Dir(current)
		if filepath.Base(parent) == "monorepository" {
			return parent, filepath.Base(current), nil
		}
		current = parent
	}

	return "", "", errs.ErrMonorepositoryNotFound
}

// FindRootFromWD is a convenience wrapper around FindRoot using the
// process's current working directory.
func FindRootFromWD() (root string, codeBaseName string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", "", errors.Wrap(err, "getting working directory")
	}
	return FindRoot(wd)
}
