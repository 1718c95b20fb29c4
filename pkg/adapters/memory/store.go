// Package memory provides an in-memory ArtifactStore, mainly for tests and
// single-process runs.
package memory

import (
	"context"
	"sync"

	"github.com/entity12208/macroforge/pkg/domain"
)

// Store implements ports.ArtifactStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Artifact
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Artifact),
	}
}

// Save persists the artifact in memory.
func (s *Store) Save(ctx context.Context, key string, artifact *domain.Artifact) error {
	// Copy the bytes so the caller can't mutate stored data by reference
	copied := &domain.Artifact{
		Data:     append([]byte(nil), artifact.Data...),
		Filename: artifact.Filename,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the artifact from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.data[key]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}

	return &domain.Artifact{
		Data:     append([]byte(nil), artifact.Data...),
		Filename: artifact.Filename,
	}, nil
}

// Delete removes the artifact.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
