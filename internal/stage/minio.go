package stage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MinioConfig configures a MinioStager or a minio-backed Uploader.
type MinioConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinioStager fetches named input files as objects from an S3-API
// compatible bucket.
type MinioStager struct {
	cfg    MinioConfig
	client *minio.Client
}

// NewMinioStager constructs a MinioStager from cfg.
func NewMinioStager(cfg MinioConfig) (*MinioStager, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "constructing minio client")
	}
	return &MinioStager{cfg: cfg, client: client}, nil
}

// Stage implements Stager.
func (s *MinioStager) Stage(ctx context.Context, directory string, names []string) error {
	for _, name := range names {
		dest := filepath.Join(directory, name)
		if err := s.client.FGetObject(ctx, s.cfg.Bucket, name, dest, minio.GetObjectOptions{}); err != nil {
			return errors.Wrapf(err, "fetching object %s from bucket %s", name, s.cfg.Bucket)
		}
		if err := os.Chmod(dest, 0o644); err != nil {
			return errors.Wrapf(err, "setting mode on staged file %s", dest)
		}
	}
	return nil
}
