// Package upload defines the pluggable artifact Uploader contract and
// ships two concrete backends.
package upload

import "context"

// Uploader transports a finished archive to its destination. Any
// failure is fatal (errs.ErrUploaderFailure).
type Uploader interface {
	Upload(ctx context.Context, archivePath string) error
}
