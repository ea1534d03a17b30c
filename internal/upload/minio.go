package upload

import (
	"context"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/stage"
)

// MinioUploader uploads the archive as an object to an S3-API
// compatible bucket.
type MinioUploader struct {
	cfg    stage.MinioConfig
	client *minio.Client
}

// NewMinioUploader constructs a MinioUploader from cfg.
func NewMinioUploader(cfg stage.MinioConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "constructing minio client")
	}
	return &MinioUploader{cfg: cfg, client: client}, nil
}

// Upload implements Uploader.
func (u *MinioUploader) Upload(ctx context.Context, archivePath string) error {
	objectName := filepath.Base(archivePath)
	_, err := u.client.FPutObject(ctx, u.cfg.Bucket, objectName, archivePath, minio.PutObjectOptions{
		ContentType: "application/x-xz",
	})
	if err != nil {
		return errors.Wrapf(err, "uploading %s to bucket %s", archivePath, u.cfg.Bucket)
	}
	return nil
}
