package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

func TestStore_Contract(t *testing.T) {
	ports.RunArtifactStoreContract(t, NewStore())
}

func TestStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	data := []byte{1, 2, 3}
	require.NoError(t, store.Save(ctx, "k", &domain.Artifact{Data: data, Filename: "k"}))

	// Mutating the caller's slice must not reach the stored copy.
	data[0] = 99
	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, loaded.Data)

	// Mutating a loaded copy must not reach the store either.
	loaded.Data[1] = 99
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again.Data)
}
