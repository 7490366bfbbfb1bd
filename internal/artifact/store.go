package artifact

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/config"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
)

// Store persists generated report artifacts and hands out download URLs.
// Keys are opaque to callers; the store that wrote an artifact is the one
// that resolves its URL.
type Store interface {
	// Put writes the artifact bytes under the given key
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// DownloadURL returns a URL the client can fetch the artifact from.
	// For S3 this is a presigned GET; for local storage it is a server path.
	DownloadURL(ctx context.Context, key string) (string, error)

	// Delete removes the artifact; missing keys are not an error
	Delete(ctx context.Context, key string) error
}

// NewStore builds the store named by the configuration
func NewStore(cfg *config.Configuration, log *logger.Logger) (Store, error) {
	switch cfg.Artifact.Provider {
	case "local", "":
		return NewLocalStore(cfg.Artifact.LocalDir, log)
	case "s3":
		return NewS3Store(cfg, log)
	default:
		return nil, ierr.NewErrorf("unknown artifact provider: %s", cfg.Artifact.Provider).
			WithHint("artifact.provider must be local or s3").
			Mark(ierr.ErrValidation)
	}
}
