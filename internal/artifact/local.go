package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
)

type localStore struct {
	dir string
	log *logger.Logger
}

// NewLocalStore creates a filesystem-backed artifact store rooted at dir
func NewLocalStore(dir string, log *logger.Logger) (Store, error) {
	if dir == "" {
		dir = "./artifacts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to create artifact directory %s", dir).
			Mark(ierr.ErrInternal)
	}
	return &localStore{dir: dir, log: log}, nil
}

// path maps a key to a file under the root, rejecting traversal
func (s *localStore) path(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ierr.NewErrorf("invalid artifact key: %s", key).
			Mark(ierr.ErrValidation)
	}
	return filepath.Join(s.dir, cleaned), nil
}

func (s *localStore) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create artifact subdirectory").
			Mark(ierr.ErrInternal)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write artifact").
			Mark(ierr.ErrInternal)
	}
	s.log.Debugw("stored artifact", "key", key, "bytes", len(data))
	return nil
}

func (s *localStore) DownloadURL(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", ierr.WithError(err).
			WithHintf("Artifact not found: %s", key).
			Mark(ierr.ErrNotFound)
	}
	return "/artifacts/" + key, nil
}

func (s *localStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return ierr.WithError(err).
			WithHint("Failed to delete artifact").
			Mark(ierr.ErrInternal)
	}
	return nil
}
