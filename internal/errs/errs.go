// Package errs defines the sentinel errors that make up the
// monorepo builder's error taxonomy. Callers wrap these with
// github.com/pkg/errors to attach context; callers at the top level
// match against them with errors.Is.
package errs

import "errors"

var (
	// ErrMonorepositoryNotFound is returned when no ancestor directory
	// named "monorepository" can be found above the working directory.
	ErrMonorepositoryNotFound = errors.New("could not find monorepository root")

	// ErrMetadataMissing is returned when a codebase's metadata.yaml
	// cannot be read.
	ErrMetadataMissing = errors.New("metadata.yaml is missing or unreadable")

	// ErrMetadataMalformed is returned when metadata.yaml cannot be
	// parsed as YAML.
	ErrMetadataMalformed = errors.New("metadata.yaml is malformed")

	// ErrCyclicDependency is returned when the codebase registry is
	// re-entered for a codebase whose construction has not finished.
	ErrCyclicDependency = errors.New("cyclic codebase dependency detected")

	// ErrNoBuildRecipe is returned when a codebase has neither an
	// executable "build" file nor a "Makefile".
	ErrNoBuildRecipe = errors.New("no build recipe: expected an executable ./build or a Makefile")

	// ErrBuildCommandFailed is returned when the build subprocess exits
	// non-zero.
	ErrBuildCommandFailed = errors.New("build command failed")

	// ErrCasLinkOther is returned when hard-linking a CAS entry fails
	// for a reason other than the destination already existing.
	ErrCasLinkOther = errors.New("cas link failed")

	// ErrStagerFailure is returned when the configured Stager fails to
	// retrieve an input file.
	ErrStagerFailure = errors.New("stager failed")

	// ErrUploaderFailure is returned when the configured Uploader fails
	// to transport the finished archive.
	ErrUploaderFailure = errors.New("uploader failed")

	// ErrArchivingFailed is returned when the external tar subprocess
	// exits non-zero.
	ErrArchivingFailed = errors.New("archiving failed")

	// ErrStagerBackendUnknown is returned when --stager names a backend
	// that is not registered.
	ErrStagerBackendUnknown = errors.New("unknown stager backend")

	// ErrUploaderBackendUnknown is returned when --uploader names a
	// backend that is not registered.
	ErrUploaderBackendUnknown = errors.New("unknown uploader backend")
)
