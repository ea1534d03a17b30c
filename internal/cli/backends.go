package cli

import (
	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/errs"
	"github.com/coreos/monorepo/internal/stage"
	"github.com/coreos/monorepo/internal/upload"
)

// buildStager constructs the Stager named by f.Backend.
func buildStager(f StagerFlags) (stage.Stager, error) {
	switch f.Backend {
	case "", "http":
		return stage.NewHTTPStager(f.BaseURL), nil
	case "minio":
		cfg := stage.MinioConfig{
			Endpoint:  f.Endpoint,
			Bucket:    f.Bucket,
			AccessKey: f.AccessKey,
			SecretKey: f.SecretKey,
			UseSSL:    f.SSL,
		}
		s, err := stage.NewMinioStager(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "constructing minio stager")
		}
		return s, nil
	default:
		return nil, errors.Wrapf(errs.ErrStagerBackendUnknown, "%q", f.Backend)
	}
}

// buildUploader constructs the Uploader named by f.Backend.
func buildUploader(f UploaderFlags) (upload.Uploader, error) {
	switch f.Backend {
	case "", "local":
		return &upload.LocalUploader{}, nil
	case "minio":
		cfg := stage.MinioConfig{
			Endpoint:  f.Endpoint,
			Bucket:    f.Bucket,
			AccessKey: f.AccessKey,
			SecretKey: f.SecretKey,
			UseSSL:    f.SSL,
		}
		u, err := upload.NewMinioUploader(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "constructing minio uploader")
		}
		return u, nil
	default:
		return nil, errors.Wrapf(errs.ErrUploaderBackendUnknown, "%q", f.Backend)
	}
}
