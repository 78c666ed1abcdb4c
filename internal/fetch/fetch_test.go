package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailerdl/internal/scrape"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
)

func testEngine(t *testing.T, baseURL, outputDir string) *Engine {
	t.Helper()
	log, err := logger.New(&config.LoggingConfig{Level: "disabled"})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Scrape.BaseURL = baseURL
	cfg.Scrape.UserAgent = "test-agent"
	cfg.Output.BaseDirectory = outputDir
	cfg.Download.DownloadTimeout = 5 * time.Second
	cfg.Download.ScreenshotWorkers = 2
	cfg.Download.RequestsPerMinute = 1000

	return New(cfg, log)
}

// assetServer serves fixed bodies by path and 404s everything else.
func assetServer(bodies map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		fmt.Fprint(w, body)
	}))
}

func TestDownloadAssets(t *testing.T) {
	server := assetServer(map[string]string{
		"/trailer.mp4": "mp4 bytes",
		"/cover.jpg":   "cover bytes",
		"/shot1.jpg":   "shot one",
		"/shot2.jpg":   "shot two",
	})
	defer server.Close()

	out := t.TempDir()
	e := testEngine(t, server.URL, out)

	details, err := e.DownloadAssets(context.Background(), &scrape.Details{
		VideoCode:    "ABC-123",
		TrailerURL:   "/trailer.mp4",
		ThumbnailURL: server.URL + "/cover.jpg",
		Screenshots:  []string{"/shot1.jpg", "/shot2.jpg"},
	}, "Jane Doe")
	require.NoError(t, err)

	assert.True(t, details.Trailer)
	assert.True(t, details.Thumbnail)
	require.Len(t, details.Screenshots, 2)
	assert.True(t, details.Screenshots[0].Success)
	assert.True(t, details.Screenshots[1].Success)

	baseDir := filepath.Join(out, "Jane_Doe", "ABC-123")
	assert.Equal(t, baseDir, details.Summary.Directory)
	assert.Equal(t, "Jane_Doe", details.Summary.Actress)
	assert.Equal(t, 2, details.Summary.TotalScreenshots)
	assert.Equal(t, 2, details.Summary.SuccessfulScreenshots)

	assert.FileExists(t, filepath.Join(baseDir, "ABC-123_trailer.mp4"))
	assert.FileExists(t, filepath.Join(baseDir, "ABC-123_thumbnail.jpg"))
	assert.FileExists(t, filepath.Join(baseDir, "screenshots", "ABC-123_screenshot_1.jpg"))
	assert.FileExists(t, filepath.Join(baseDir, "screenshots", "ABC-123_screenshot_2.jpg"))
}

func TestDownloadAssetsPartialFailure(t *testing.T) {
	server := assetServer(map[string]string{
		"/shot1.jpg": "shot one",
		// shot2 missing, trailer missing
	})
	defer server.Close()

	out := t.TempDir()
	e := testEngine(t, server.URL, out)

	details, err := e.DownloadAssets(context.Background(), &scrape.Details{
		VideoCode:   "ABC-123",
		TrailerURL:  "/trailer.mp4",
		Screenshots: []string{"/shot1.jpg", "/shot2.jpg"},
	}, "Jane Doe")
	require.NoError(t, err)

	assert.False(t, details.Trailer)
	assert.False(t, details.Thumbnail)
	assert.Equal(t, 2, details.Summary.TotalScreenshots)
	assert.Equal(t, 1, details.Summary.SuccessfulScreenshots)

	// Results keep the scrape order regardless of worker scheduling.
	assert.True(t, details.Screenshots[0].Success)
	assert.False(t, details.Screenshots[1].Success)
	assert.NotEmpty(t, details.Screenshots[0].Path)
	assert.Empty(t, details.Screenshots[1].Path)
}

func TestDownloadAssetsSkipsPlaceholderThumbnail(t *testing.T) {
	server := assetServer(nil)
	defer server.Close()

	out := t.TempDir()
	e := testEngine(t, server.URL, out)

	details, err := e.DownloadAssets(context.Background(), &scrape.Details{
		VideoCode:    "ABC-123",
		ThumbnailURL: server.URL + "/static/no-image.jpg",
	}, "Jane Doe")
	require.NoError(t, err)

	assert.False(t, details.Thumbnail)
	assert.NoFileExists(t, filepath.Join(out, "Jane_Doe", "ABC-123", "ABC-123_thumbnail.jpg"))
}

func TestDownloadAssetsEmptyVideoCode(t *testing.T) {
	server := assetServer(nil)
	defer server.Close()

	out := t.TempDir()
	e := testEngine(t, server.URL, out)

	details, err := e.DownloadAssets(context.Background(), &scrape.Details{}, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "unknown", details.Summary.VideoCode)
	assert.DirExists(t, filepath.Join(out, "Jane_Doe", "unknown"))
}

func TestFetchAssetRejectsBadScheme(t *testing.T) {
	e := testEngine(t, "https://example.com", t.TempDir())

	_, err := e.fetchAsset(context.Background(), nil, "ftp://example.com/file", "file")
	assert.ErrorContains(t, err, "invalid URL scheme")
}
