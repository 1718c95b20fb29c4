package ports

import (
	"context"
	"testing"
	"time"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArtifactStoreContract runs a suite of tests to verify that an
// ArtifactStore implementation adheres to the defined interface contract.
func RunArtifactStoreContract(t *testing.T, store ArtifactStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405") + ".gdr"

	t.Run("Save and Load", func(t *testing.T) {
		artifact := &domain.Artifact{
			Data:     []byte{0x4d, 0x46, 0x52, 0x31, 0x00, 0x00, 0x00, 0x03, 0x05},
			Filename: key,
		}

		err := store.Save(ctx, key, artifact)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, artifact.Data, loaded.Data)
		assert.Equal(t, artifact.Filename, loaded.Filename)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, &domain.Artifact{Data: []byte{1}, Filename: key})
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound, "Load after Delete should return ErrArtifactNotFound")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Save(ctx, k1, &domain.Artifact{Data: []byte{1}, Filename: k1})
		_ = store.Save(ctx, k2, &domain.Artifact{Data: []byte{2}, Filename: k2})

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
