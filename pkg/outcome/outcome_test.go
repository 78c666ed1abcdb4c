package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trailerdl/pkg/catalog"
)

func TestScreenshotClassification(t *testing.T) {
	tests := []struct {
		name       string
		successful int
		total      int
		want       ScreenshotState
	}{
		{"nothing requested", 0, 0, ScreenshotsNone},
		{"all failed", 0, 5, ScreenshotsNone},
		{"all succeeded", 3, 3, ScreenshotsAll},
		{"some failed", 2, 5, ScreenshotsPartial},
		{"single success of one", 1, 1, ScreenshotsAll},
		// Impossible with real data (successful never exceeds total) but
		// pinned by the classification rule.
		{"successful exceeds total", 5, 0, ScreenshotsAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Outcome{Successful: tt.successful, Total: tt.total}
			assert.Equal(t, tt.want, o.Screenshots())
		})
	}
}

func TestInterpretDefaults(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		o := Interpret(nil)
		assert.False(t, o.Success)
		assert.Equal(t, "unknown", o.VideoCode)
		assert.Equal(t, "unknown", o.Directory)
		assert.Equal(t, ScreenshotsNone, o.Screenshots())
	})

	t.Run("success without details", func(t *testing.T) {
		o := Interpret(&catalog.DownloadResponse{
			Success: true,
			Message: "Download completed successfully",
		})
		assert.True(t, o.Success)
		assert.Equal(t, "Download completed successfully", o.Message)
		assert.False(t, o.Trailer)
		assert.False(t, o.Thumbnail)
		assert.Zero(t, o.Total)
		assert.Zero(t, o.Successful)
		assert.Equal(t, "unknown", o.VideoCode)
		assert.Equal(t, "unknown", o.Directory)
	})

	t.Run("empty summary fields", func(t *testing.T) {
		o := Interpret(&catalog.DownloadResponse{
			Success: true,
			Details: &catalog.AssetDetails{
				Trailer: true,
			},
		})
		assert.True(t, o.Trailer)
		assert.Equal(t, "unknown", o.VideoCode)
		assert.Equal(t, "unknown", o.Directory)
	})
}

func TestInterpretFullResponse(t *testing.T) {
	o := Interpret(&catalog.DownloadResponse{
		Success:    true,
		Message:    "Random video download completed successfully",
		VideoTitle: "Some Title",
		Details: &catalog.AssetDetails{
			Trailer:   true,
			Thumbnail: false,
			Summary: catalog.Summary{
				VideoCode:             "ABC-123",
				Directory:             "/data/Jane_Doe/ABC-123",
				TotalScreenshots:      5,
				SuccessfulScreenshots: 5,
			},
		},
	})

	assert.True(t, o.Success)
	assert.Equal(t, "Some Title", o.Title)
	assert.True(t, o.Trailer)
	assert.False(t, o.Thumbnail)
	assert.Equal(t, "ABC-123", o.VideoCode)
	assert.Equal(t, "/data/Jane_Doe/ABC-123", o.Directory)
	assert.Equal(t, 5, o.Total)
	assert.Equal(t, 5, o.Successful)
	assert.Equal(t, ScreenshotsAll, o.Screenshots())
}

func TestInterpretFailure(t *testing.T) {
	o := Interpret(&catalog.DownloadResponse{
		Success: false,
		Message: "Download failed",
	})

	assert.False(t, o.Success)
	assert.Equal(t, "Download failed", o.Message)
	assert.Equal(t, ScreenshotsNone, o.Screenshots())
}
