package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	_, ok := store.Get("admin-requests-view-mode")
	assert.False(t, ok)

	require.NoError(t, store.Set("admin-requests-view-mode", "cards"))
	require.NoError(t, store.Set("admin-requests-density", "comfortable"))

	v, ok := store.Get("admin-requests-view-mode")
	require.True(t, ok)
	assert.Equal(t, "cards", v)

	// A second store over the same file sees the persisted values.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())

	v, ok = reloaded.Get("admin-requests-view-mode")
	require.True(t, ok)
	assert.Equal(t, "cards", v)

	v, ok = reloaded.Get("admin-requests-density")
	require.True(t, ok)
	assert.Equal(t, "comfortable", v)
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nope", "preferences.json"))
	require.NoError(t, err)
	require.NoError(t, store.Load())

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestFileStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	err = store.Load()
	require.ErrorIs(t, err, ErrStoreCorrupted)

	// Corruption empties the store but leaves it usable.
	_, ok := store.Get("anything")
	assert.False(t, ok)
	assert.NoError(t, store.Set("admin-requests-view-mode", "table"))
}

func TestFileStore_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "settings": {"k": "v"}}`), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	err = store.Load()
	require.ErrorIs(t, err, ErrStoreCorrupted)
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestFileStore_SetCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "preferences.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())
	require.NoError(t, store.Set("admin-quotes-view-mode", "cards"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"admin-quotes-view-mode": "cards"`)
	assert.Contains(t, string(data), `"version": 1`)
}

func TestFileStore_EmptyKeyRejected(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	assert.Error(t, store.Set("", "x"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("admin-projects-density")
	assert.False(t, ok)

	require.NoError(t, store.Set("admin-projects-density", "compact"))
	v, ok := store.Get("admin-projects-density")
	require.True(t, ok)
	assert.Equal(t, "compact", v)

	assert.Error(t, store.Set("", "x"))
}
