package catalog

// Video is one search result from the catalog.
// Immutable once received; URL is an opaque locator.
type Video struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	ActressName string `json:"actress_name"`
	Page        int    `json:"page"`
}

// SearchResponse is the reply to POST /search.
type SearchResponse struct {
	Success bool    `json:"success"`
	Videos  []Video `json:"videos,omitempty"`
	Page    int     `json:"page,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// DownloadRequest is the body of POST /download.
type DownloadRequest struct {
	VideoURL    string `json:"video_url"`
	ActressName string `json:"actress_name"`
}

// RandomDownloadRequest is the body of POST /download_random.
type RandomDownloadRequest struct {
	ActressName string `json:"actress_name"`
}

// ScreenshotResult records the outcome of one screenshot fetch.
type ScreenshotResult struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
}

// Summary aggregates one completed download.
type Summary struct {
	Actress               string `json:"actress"`
	VideoCode             string `json:"video_code"`
	Directory             string `json:"directory"`
	TotalScreenshots      int    `json:"total_screenshots"`
	SuccessfulScreenshots int    `json:"successful_screenshots"`
}

// AssetDetails holds the per-asset results of a download operation.
type AssetDetails struct {
	Trailer     bool               `json:"trailer"`
	Thumbnail   bool               `json:"thumbnail"`
	Screenshots []ScreenshotResult `json:"screenshots"`
	Summary     Summary            `json:"summary"`
}

// DownloadResponse is the reply to POST /download and POST /download_random.
// VideoTitle is only populated for random downloads.
type DownloadResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message,omitempty"`
	VideoTitle string        `json:"video_title,omitempty"`
	Details    *AssetDetails `json:"details,omitempty"`
	Error      string        `json:"error,omitempty"`
}
