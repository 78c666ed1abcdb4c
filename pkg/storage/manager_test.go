package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAsset(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(filepath.Join(dir, "Jane_Doe", "ABC-123"))
	require.NoError(t, err)

	err = mgr.SaveAsset(strings.NewReader("trailer bytes"), "ABC-123_trailer.mp4")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(mgr.BaseDir(), "ABC-123_trailer.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "trailer bytes", string(data))

	// No temp file left behind.
	entries, err := os.ReadDir(mgr.BaseDir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
	}

	assert.True(t, mgr.Exists("ABC-123_trailer.mp4"))
	assert.Equal(t, 1, mgr.SavedCount())
}

func TestSaveAssetCreatesSubdirectories(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	require.NoError(t, err)

	rel := filepath.Join("screenshots", "ABC-123_screenshot_1.jpg")
	require.NoError(t, mgr.SaveAsset(strings.NewReader("jpg"), rel))

	assert.FileExists(t, filepath.Join(mgr.BaseDir(), rel))
}

func TestExistsFindsFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(dir)
	require.NoError(t, err)

	assert.False(t, mgr.Exists("cover.jpg"))

	// A file written outside the manager is still detected.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("x"), 0644))
	assert.True(t, mgr.Exists("cover.jpg"))
}
