package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summarizeai/sai-cli/internal/ports"
)

func TestEnvTokenBeatsFileToken(t *testing.T) {
	root := t.TempDir()
	store, err := NewEnvFirstWithFileFallback(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), ports.SessionTokenKey, "tok-file"))
	t.Setenv("SAI_TOKEN", "tok-env")

	got, err := store.Get(context.Background(), ports.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-env", got)
}

func TestFallsBackToFileToken(t *testing.T) {
	t.Setenv("SAI_TOKEN", "")

	root := t.TempDir()
	store, err := NewEnvFirstWithFileFallback(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), ports.SessionTokenKey, "tok-file"))

	got, err := store.Get(context.Background(), ports.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-file", got)
}

func TestPutLandsInWritableFallback(t *testing.T) {
	t.Setenv("SAI_TOKEN", "")

	root := t.TempDir()
	store, err := NewEnvFirstWithFileFallback(root)
	require.NoError(t, err)

	// The env store is read-only; the write must reach the file store.
	require.NoError(t, store.Put(context.Background(), ports.SessionTokenKey, "tok-new"))

	got, err := store.Get(context.Background(), ports.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", got)
}

func TestDeleteClearsFileSession(t *testing.T) {
	t.Setenv("SAI_TOKEN", "")

	root := t.TempDir()
	store, err := NewEnvFirstWithFileFallback(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), ports.SessionTokenKey, "tok"))
	require.NoError(t, store.Delete(context.Background(), ports.SessionTokenKey))

	_, err = store.Get(context.Background(), ports.SessionTokenKey)
	assert.Error(t, err)
}

func TestNewStoreRejectsNilStores(t *testing.T) {
	_, err := NewStore(nil, nil)
	assert.Error(t, err)
}

func TestCanceledContextSkipsFallback(t *testing.T) {
	root := t.TempDir()
	store, err := NewEnvFirstWithFileFallback(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Get(ctx, ports.SessionTokenKey)
	assert.ErrorIs(t, err, context.Canceled)
}
