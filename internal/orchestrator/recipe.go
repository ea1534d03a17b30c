package orchestrator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/errs"
)

// selectBuildCommand probes, in order, for an executable file named
// "build" and then a file named "Makefile" inside dir. Neither present
// (or "build" present but not executable) fails with ErrNoBuildRecipe.
func selectBuildCommand(dir string) ([]string, error) {
	buildPath := filepath.Join(dir, "build")
	if info, err := os.Stat(buildPath); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
		return []string{"./build"}, nil
	}

	makefilePath := filepath.Join(dir, "Makefile")
	if info, err := os.Stat(makefilePath); err == nil && !info.IsDir() {
		return []string{"make"}, nil
	}

	return nil, errors.Wrapf(errs.ErrNoBuildRecipe, "in %s", dir)
}
