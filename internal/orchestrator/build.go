// Package orchestrator implements the restore-or-build decision,
// dependency recursion, sandboxed execution and output lockdown.
package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/coreos/monorepo/internal/buildctx"
	"github.com/coreos/monorepo/internal/cas"
	"github.com/coreos/monorepo/internal/codebase"
	"github.com/coreos/monorepo/internal/errs"
	"github.com/coreos/monorepo/internal/fsutil"
	"github.com/coreos/monorepo/internal/metrics"
)

// Builder drives builds for one Build Context, memoizing codebases
// through its Registry.
type Builder struct {
	Ctx      *buildctx.Context
	Registry *codebase.Registry
}

// NewBuilder returns a Builder bound to ctx with a fresh registry.
func NewBuilder(ctx *buildctx.Context) *Builder {
	return &Builder{Ctx: ctx, Registry: codebase.NewRegistry(ctx)}
}

// Build executes the restore-or-build algorithm for cb. When
// skipPostbuild is true, outputs are not recorded (no manifest is
// written and the CAS is not populated) — this is how the "postbuild"
// sibling codebase is built.
func (b *Builder) Build(ctx context.Context, cb *codebase.CodeBase, skipPostbuild bool) error {
	hit, _, err := cas.Restore(b.Ctx.MetadataPrefix, cb.ManifestPath)
	if err != nil {
		return errors.Wrapf(err, "restoring %s", cb.Name)
	}
	if hit {
		log.WithFields(log.Fields{"codebase": cb.Name, "hash": cb.HashHex()}).Debug("restored from previous build")
		b.Ctx.Metrics.RecordBuild(cb.Name, metrics.ResultRestored)
		return nil
	}

	for _, depName := range cb.Metadata.Dependencies {
		dep, err := b.Registry.Get(depName)
		if err != nil {
			return errors.Wrapf(err, "loading dependency %q of %q", depName, cb.Name)
		}
		if err := b.Build(ctx, dep, false); err != nil {
			return errors.Wrapf(err, "building dependency %q of %q", depName, cb.Name)
		}
	}

	if err := b.runBuild(ctx, cb); err != nil {
		b.Ctx.Metrics.RecordBuild(cb.Name, metrics.ResultFailed)
		return err
	}

	if !skipPostbuild {
		files, symlinks, err := fsutil.EnumerateOutputs(b.Ctx.Prefix)
		if err != nil {
			return errors.Wrapf(err, "enumerating outputs of %s", cb.Name)
		}

		manifest := &cas.Manifest{
			CodeBase:      cb.Name,
			Prefix:        b.Ctx.Prefix,
			Hash:          cb.HashHex(),
			Files:         files,
			SymbolicLinks: symlinks,
		}
		if err := cas.Save(cb.ManifestPath, manifest); err != nil {
			return errors.Wrapf(err, "recording manifest for %s", cb.Name)
		}
		if err := cas.Populate(b.Ctx.MetadataPrefix, files); err != nil {
			return errors.Wrapf(err, "populating CAS for %s", cb.Name)
		}
	}

	b.Ctx.Metrics.RecordBuild(cb.Name, metrics.ResultBuilt)
	return nil
}

// runBuild stages a sandboxed copy of cb's source, fetches any
// declared input files, selects and runs its build command, then
// freezes the prefix against further writes.
func (b *Builder) runBuild(ctx context.Context, cb *codebase.CodeBase) error {
	stdoutPath := filepath.Join(b.Ctx.MetadataPrefix, cb.Name+".out")
	stderrPath := filepath.Join(b.Ctx.MetadataPrefix, cb.Name+".err")

	stdout, err := os.OpenFile(stdoutPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", stdoutPath)
	}
	defer stdout.Close()

	stderr, err := os.OpenFile(stderrPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", stderrPath)
	}
	defer stderr.Close()

	buildID := uuid.New().String()
	tmpParent, err := os.MkdirTemp("", "monorepo-"+cb.Name+"-"+buildID+"-")
	if err != nil {
		return errors.Wrap(err, "creating temporary build directory")
	}
	defer os.RemoveAll(tmpParent)

	tmpDir := filepath.Join(tmpParent, cb.Name)
	if err := copyTree(cb.Root, tmpDir); err != nil {
		return errors.Wrapf(err, "copying source of %s into sandbox", cb.Name)
	}

	if names := cb.Metadata.InputFileNames(); len(names) > 0 {
		inputDir := filepath.Join(tmpDir, "input_files")
		if err := os.MkdirAll(inputDir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", inputDir)
		}
		log.WithFields(log.Fields{"codebase": cb.Name, "count": len(names)}).Debug("staging input files")
		if err := b.Ctx.Stager.Stage(ctx, inputDir, names); err != nil {
			return errors.Wrapf(errs.ErrStagerFailure, "%s: %v", cb.Name, err)
		}
	}

	command, err := selectBuildCommand(tmpDir)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"codebase": cb.Name,
		"stdout":   stdoutPath,
		"stderr":   stderrPath,
	}).Debug("building")

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = tmpDir
	cmd.Env = BuilderEnv(b.Ctx.Prefix, cb.Metadata.Environment)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		return errors.Wrapf(errs.ErrBuildCommandFailed, "%s: %v", cb.Name, runErr)
	}
	b.Ctx.Metrics.ObserveBuildDuration(elapsed)

	if err := fsutil.MakeTreeReadOnly(b.Ctx.Prefix); err != nil {
		return errors.Wrapf(err, "freezing prefix after building %s", cb.Name)
	}

	log.WithFields(log.Fields{"codebase": cb.Name, "elapsed": elapsed}).Debug("built")
	return nil
}
