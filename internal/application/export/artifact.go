package export

import (
	"context"
	"io"
	"time"
)

// ArtifactStore persists generated export files and hands out
// time-limited download links.
type ArtifactStore interface {
	// Upload stores the artifact under the given key.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error

	// DownloadURL returns a presigned download URL for a stored artifact
	// together with its expiration time.
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// Delete removes a stored artifact.
	Delete(ctx context.Context, key string) error
}
