// Package buildctx defines the explicit Build Context value threaded
// through every codebase operation, in place of process-wide globals.
package buildctx

import (
	"github.com/coreos/monorepo/internal/metrics"
	"github.com/coreos/monorepo/internal/stage"
	"github.com/coreos/monorepo/internal/upload"
)

// Context carries the per-invocation configuration and shared services
// a build needs: the monorepository root, the install prefix, the
// metadata prefix (manifests + CAS + logs), the directory the process
// started in, and the pluggable stager/uploader/metrics collaborators.
type Context struct {
	// MonorepoRoot is the ancestor directory named "monorepository".
	MonorepoRoot string

	// Prefix is the install root all codebases share.
	Prefix string

	// MetadataPrefix holds manifests, the CAS, and build logs. Must
	// share a filesystem with Prefix so hard links succeed.
	MetadataPrefix string

	// OriginalDir is the working directory captured at process start,
	// used to resolve any relative paths the caller passed in.
	OriginalDir string

	// Stager retrieves named input files for codebases that declare
	// input_files.
	Stager stage.Stager

	// Uploader transports a finished archive to its destination.
	Uploader upload.Uploader

	// Metrics records build/cache-hit/miss counters and build duration.
	Metrics *metrics.Recorder

	// Debug enables verbose logging.
	Debug bool
}
