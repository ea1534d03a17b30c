// Package cli wires command-line flags to a buildctx.Context: resolving
// the monorepository root and current codebase, selecting the stager
// and uploader backends, and applying the default-prefix cleanup rule.
package cli

import (
	"github.com/spf13/pflag"
)

// StagerFlags holds the --stager* flag values for one invocation.
type StagerFlags struct {
	Backend   string
	BaseURL   string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	SSL       bool
}

// UploaderFlags holds the --uploader* flag values for one invocation.
type UploaderFlags struct {
	Backend   string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	SSL       bool
}

// Flags is the full set of configuration accepted by `build` and
// `upload`.
type Flags struct {
	Prefix         string
	MetadataPrefix string
	Debug          bool
	ArchiveName    string
	Stager         StagerFlags
	Uploader       UploaderFlags
}

// AddCommonFlags registers the flags shared by `build` and `upload` on
// fs.
func AddCommonFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.Prefix, "prefix", "", "install prefix (default <monorepository_root>/prefix)")
	fs.StringVar(&f.MetadataPrefix, "metadata-prefix", "", "metadata prefix (default <monorepository_root>/metadata_prefix)")
	fs.BoolVar(&f.Debug, "debug", false, "enable verbose logging")

	fs.StringVar(&f.Stager.Backend, "stager", "http", "input stager backend: http, minio")
	fs.StringVar(&f.Stager.BaseURL, "stager-base-url", "", "base URL for the http stager")
	fs.StringVar(&f.Stager.Endpoint, "stager-minio-endpoint", "", "endpoint for the minio stager")
	fs.StringVar(&f.Stager.Bucket, "stager-minio-bucket", "", "bucket for the minio stager")
	fs.StringVar(&f.Stager.AccessKey, "stager-minio-access-key", "", "access key for the minio stager")
	fs.StringVar(&f.Stager.SecretKey, "stager-minio-secret-key", "", "secret key for the minio stager")
	fs.BoolVar(&f.Stager.SSL, "stager-minio-ssl", true, "use TLS for the minio stager")

	fs.StringVar(&f.Uploader.Backend, "uploader", "local", "artifact uploader backend: local, minio")
	fs.StringVar(&f.Uploader.Endpoint, "uploader-minio-endpoint", "", "endpoint for the minio uploader")
	fs.StringVar(&f.Uploader.Bucket, "uploader-minio-bucket", "", "bucket for the minio uploader")
	fs.StringVar(&f.Uploader.AccessKey, "uploader-minio-access-key", "", "access key for the minio uploader")
	fs.StringVar(&f.Uploader.SecretKey, "uploader-minio-secret-key", "", "secret key for the minio uploader")
	fs.BoolVar(&f.Uploader.SSL, "uploader-minio-ssl", true, "use TLS for the minio uploader")
}
