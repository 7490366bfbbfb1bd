package testutil

import (
	"context"
	"sync"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// InMemoryArtifactStore implements artifact.Store for tests
type InMemoryArtifactStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	putErr  error
}

func NewInMemoryArtifactStore() *InMemoryArtifactStore {
	return &InMemoryArtifactStore{objects: make(map[string][]byte)}
}

// FailPuts makes every subsequent Put return err; nil restores writes.
func (s *InMemoryArtifactStore) FailPuts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

func (s *InMemoryArtifactStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = data
	return nil
}

func (s *InMemoryArtifactStore) DownloadURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, exists := s.objects[key]; !exists {
		return "", ierr.NewErrorf("artifact not found: %s", key).
			Mark(ierr.ErrNotFound)
	}
	return "memory://" + key, nil
}

func (s *InMemoryArtifactStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// GetObject returns the stored artifact bytes, for assertions
func (s *InMemoryArtifactStore) GetObject(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, exists := s.objects[key]
	return data, exists
}
