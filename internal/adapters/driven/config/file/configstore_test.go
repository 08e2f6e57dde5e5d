package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyLibraryRoot, "/photos"))
	require.NoError(t, store.Set(KeyLibraryPageSize, 250))
	require.NoError(t, store.Set(KeyLibraryWatch, true))

	assert.Equal(t, "/photos", store.GetString(KeyLibraryRoot))
	assert.Equal(t, 250, store.GetInt(KeyLibraryPageSize))
	assert.True(t, store.GetBool(KeyLibraryWatch))
}

func TestConfigStore_Get_Missing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "a string"))

	assert.Zero(t, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(KeyStorageBackend, "sqlite"))
	require.NoError(t, first.Set(KeyAnnotatorURL, "http://localhost:9999"))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", second.GetString(KeyStorageBackend))
	assert.Equal(t, "http://localhost:9999", second.GetString(KeyAnnotatorURL))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	toml := "[library]\nroot = \"/photos\"\nwatch = true\n\n[annotator]\nmodel = \"glance-vision\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(toml), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/photos", store.GetString(KeyLibraryRoot))
	assert.True(t, store.GetBool(KeyLibraryWatch))
	assert.Equal(t, "glance-vision", store.GetString(KeyAnnotatorModel))
}

func TestConfigStore_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get(KeyLibraryRoot)
	assert.False(t, ok)
	assert.NotEmpty(t, store.Path())
}
