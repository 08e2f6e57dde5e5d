package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestImagesCmd_ListsAll(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "images")

	require.NoError(t, err)
	assert.Contains(t, out, "sunset.jpg")
	assert.Contains(t, out, "city.jpg")
}

func TestImagesCmd_FilterByTag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "images", "--tag", "beach")

	require.NoError(t, err)
	assert.Contains(t, out, "sunset.jpg")
	assert.NotContains(t, out, "city.jpg")
}

func TestImagesCmd_SortByName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "images", "--sort", "name")

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "city.jpg"), strings.Index(out, "sunset.jpg"))
}

func TestImagesShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "images", "show", "asset-1")

	require.NoError(t, err)
	assert.Contains(t, out, "sunset.jpg")
	assert.Contains(t, out, "Beautiful sunset over the ocean")
}

func TestImagesShowCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "images", "show", "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image with id")
}

func TestImagesRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "images", "remove", "asset-2")
	require.NoError(t, err)

	out, err := runCommand(t, "images")
	require.NoError(t, err)
	assert.NotContains(t, out, "city.jpg")
}

func TestImagesFavoriteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "images", "favorite", "asset-1")
	require.NoError(t, err)

	out, err := runCommand(t, "images", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "sunset.jpg")
	assert.NotContains(t, out, "city.jpg")
}

func TestTagsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "tags")

	require.NoError(t, err)
	assert.Contains(t, out, "beach")
	assert.Contains(t, out, "sunset")
}

func TestAlbumsCmd_Lists(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "albums")

	require.NoError(t, err)
	assert.Contains(t, out, "Evenings")
	assert.Contains(t, out, "device")
}

func TestAlbumsCreateCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "albums", "create", "Best of 2026")

	require.NoError(t, err)
	assert.Contains(t, out, "Created album")

	out, err = runCommand(t, "albums")
	require.NoError(t, err)
	assert.Contains(t, out, "Best of 2026")
	assert.Contains(t, out, "user")
}

func TestAlbumsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "albums", "show", "alb-1")

	require.NoError(t, err)
	assert.Contains(t, out, "sunset.jpg")
}

func TestScanCmd_LoadsLibrary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "scan")

	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 assets in 1 albums")
}

func TestIngestCmd_NoAnnotatorStillCommits(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "ingest", "file:///camera/new.jpg")

	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestIngestQueueCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "ingest", "queue")

	require.NoError(t, err)
	assert.Contains(t, out, "Queue is empty.")
}
