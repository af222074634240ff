package storage

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	exportapp "github.com/shopadmin/backend/internal/application/export"
)

var _ exportapp.ArtifactStore = (*StubArtifactStore)(nil)

// StubArtifactStore keeps uploaded artifacts in memory and serves
// placeholder URLs. Used in development and tests where no object
// storage backend is available.
type StubArtifactStore struct {
	// BaseURL prefixes generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubArtifactStore creates a new StubArtifactStore
func NewStubArtifactStore() *StubArtifactStore {
	return &StubArtifactStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload keeps the artifact bytes in memory.
func (s *StubArtifactStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// DownloadURL returns a placeholder link for a stored artifact.
func (s *StubArtifactStore) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + key + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// Delete removes a stored artifact. Unknown keys are not an error.
func (s *StubArtifactStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Object returns the stored bytes for a key, for assertions in tests.
func (s *StubArtifactStore) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
