package cli

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/coreos/monorepo/internal/buildctx"
	"github.com/coreos/monorepo/internal/metrics"
	"github.com/coreos/monorepo/internal/monorepo"
)

// BuildContext resolves the monorepository root and current codebase
// from the working directory, applies f's defaults, and constructs a
// ready-to-use buildctx.Context. It returns the name of the codebase
// the caller is currently positioned in and a cleanup func the caller
// must invoke (after the build/upload run finishes) to settle the
// progress bar.
func BuildContext(f Flags) (bctx *buildctx.Context, codeBaseName string, cleanup func(), err error) {
	if f.Debug {
		log.SetLevel(log.DebugLevel)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		return nil, "", nil, errors.Wrap(err, "getting working directory")
	}

	root, codeBaseName, err := monorepo.FindRootFromWD()
	if err != nil {
		return nil, "", nil, err
	}

	prefix := f.Prefix
	prefixIsDefault := prefix == ""
	if prefixIsDefault {
		prefix = filepath.Join(root, "prefix")
	}

	metadataPrefix := f.MetadataPrefix
	if metadataPrefix == "" {
		metadataPrefix = filepath.Join(root, "metadata_prefix")
	}

	if prefixIsDefault {
		log.WithFields(log.Fields{"prefix": prefix}).Debug("removing default prefix")
		if err := os.RemoveAll(prefix); err != nil {
			return nil, "", nil, errors.Wrapf(err, "removing default prefix %s", prefix)
		}
	}

	if err := os.MkdirAll(prefix, 0o755); err != nil {
		return nil, "", nil, errors.Wrapf(err, "creating prefix %s", prefix)
	}
	if err := os.MkdirAll(metadataPrefix, 0o755); err != nil {
		return nil, "", nil, errors.Wrapf(err, "creating metadata prefix %s", metadataPrefix)
	}

	stager, err := buildStager(f.Stager)
	if err != nil {
		return nil, "", nil, err
	}
	uploader, err := buildUploader(f.Uploader)
	if err != nil {
		return nil, "", nil, err
	}

	recorder := metrics.NewRecorder()
	reporter := newProgressReporter()
	recorder.OnResult = reporter.onResult

	bctx = &buildctx.Context{
		MonorepoRoot:   root,
		Prefix:         prefix,
		MetadataPrefix: metadataPrefix,
		OriginalDir:    originalDir,
		Stager:         stager,
		Uploader:       uploader,
		Metrics:        recorder,
		Debug:          f.Debug,
	}
	return bctx, codeBaseName, reporter.done, nil
}
