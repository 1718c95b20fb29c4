package ports

import (
	"context"

	"github.com/entity12208/macroforge/pkg/domain"
)

// ArtifactStore defines the interface for persisting exported artifacts.
// Keys are the suggested filenames produced at export time; the timestamp in
// each name guarantees uniqueness at second granularity, so saves never
// silently overwrite an earlier run.
type ArtifactStore interface {
	// Save persists the artifact under the given key.
	Save(ctx context.Context, key string, artifact *domain.Artifact) error

	// Load retrieves the artifact for a given key.
	// Returns domain.ErrArtifactNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Artifact, error)

	// Delete removes the artifact for a given key.
	Delete(ctx context.Context, key string) error

	// List returns the stored artifact keys.
	List(ctx context.Context) ([]string, error)
}
