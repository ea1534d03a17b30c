package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/coreos/monorepo/internal/archive"
	"github.com/coreos/monorepo/internal/buildctx"
	"github.com/coreos/monorepo/internal/errs"
)

// postbuildCodebaseName is the special sibling codebase built after the
// current one, exempt from CAS recording.
const postbuildCodebaseName = "postbuild"

// RunBuild builds codeBaseName (the codebase the caller is currently
// working in) and, if present, its monorepository-root sibling
// "postbuild".
func RunBuild(ctx context.Context, bctx *buildctx.Context, codeBaseName string) error {
	b := NewBuilder(bctx)

	cb, err := b.Registry.Get(codeBaseName)
	if err != nil {
		return errors.Wrapf(err, "loading codebase %q", codeBaseName)
	}

	if err := b.Build(ctx, cb, false); err != nil {
		return err
	}

	postbuildDir := filepath.Join(bctx.MonorepoRoot, postbuildCodebaseName)
	if info, statErr := os.Stat(postbuildDir); statErr == nil && info.IsDir() {
		postbuild, err := b.Registry.Get(postbuildCodebaseName)
		if err != nil {
			return errors.Wrap(err, "loading postbuild codebase")
		}
		if err := b.Build(ctx, postbuild, true); err != nil {
			return errors.Wrap(err, "building postbuild codebase")
		}
	}

	return nil
}

// RunUpload runs RunBuild, then archives the prefix and hands it to the
// configured Uploader.
func RunUpload(ctx context.Context, bctx *buildctx.Context, codeBaseName, archiveName string) error {
	if err := RunBuild(ctx, bctx, codeBaseName); err != nil {
		return err
	}

	// Every subprocess receives its working directory explicitly via
	// exec.Cmd.Dir, so the process's own working directory is never
	// mutated and there is nothing to restore here before archiving.

	if archiveName == "" {
		b := NewBuilder(bctx)
		cb, err := b.Registry.Get(codeBaseName)
		if err != nil {
			return errors.Wrapf(err, "loading codebase %q", codeBaseName)
		}
		timestamp := nowFunc().Format("2006-01-02T15-04-05")
		archiveName = fmt.Sprintf("%s-%s-%s", codeBaseName, timestamp, cb.HashHex())
	}

	tmpDir, err := os.MkdirTemp("", "monorepo-archive-"+uuid.New().String()+"-")
	if err != nil {
		return errors.Wrap(err, "creating temporary archive directory")
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, archiveName+".tar.xz")

	log.WithFields(log.Fields{"archive": archivePath}).Debug("archiving prefix")
	var driver archive.Driver
	if err := driver.Create(ctx, archivePath, bctx.Prefix); err != nil {
		return err
	}

	log.WithFields(log.Fields{"archive": archiveName}).Debug("uploading")
	if err := bctx.Uploader.Upload(ctx, archivePath); err != nil {
		return errors.Wrapf(errs.ErrUploaderFailure, "%v", err)
	}

	return nil
}

// nowFunc is a seam for tests; production code always uses time.Now.
var nowFunc = time.Now
