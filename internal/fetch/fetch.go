// Package fetch downloads a video's assets (trailer, thumbnail,
// screenshots) into a per-performer directory. Each asset is fetched at
// most once, best effort; individual failures are recorded in the result
// rather than aborting the batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"trailerdl/internal/scrape"
	"trailerdl/pkg/catalog"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
	"trailerdl/pkg/ratelimit"
	"trailerdl/pkg/sanitize"
	"trailerdl/pkg/storage"
)

// placeholderThumb marks the catalog's fallback image; downloading it
// would waste a slot on a stock "no image" graphic.
const placeholderThumb = "no-image.jpg"

// Engine downloads video assets. Requests are paced by a shared token
// bucket so bursts of screenshots do not hammer the catalog's CDN.
type Engine struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	baseURL    string
	userAgent  string
	outputDir  string
	workers    int
	logger     logger.Logger
}

// New creates a fetch engine from config.
func New(cfg *config.Config, log logger.Logger) *Engine {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Engine{
		httpClient: &http.Client{Timeout: cfg.Download.DownloadTimeout},
		limiter:    ratelimit.NewTokenBucket(cfg.Download.RequestsPerMinute, time.Minute),
		baseURL:    strings.TrimRight(cfg.Scrape.BaseURL, "/"),
		userAgent:  cfg.Scrape.UserAgent,
		outputDir:  cfg.Output.BaseDirectory,
		workers:    cfg.Download.ScreenshotWorkers,
		logger:     log,
	}
}

// DownloadAssets fetches all assets for one video into
// <output>/<sanitized name>/<video code>/. The returned details record
// per-asset success; only a failure to create the directory is an error.
func (e *Engine) DownloadAssets(ctx context.Context, d *scrape.Details, actressName string) (*catalog.AssetDetails, error) {
	sanitized := sanitize.Filename(actressName)
	code := d.VideoCode
	if code == "" {
		code = "unknown"
	}

	baseDir := filepath.Join(e.outputDir, sanitized, code)
	mgr, err := storage.NewManager(baseDir)
	if err != nil {
		return nil, err
	}

	e.logger.InfoWithFields("downloading assets", map[string]interface{}{
		"actress":     sanitized,
		"video_code":  code,
		"directory":   baseDir,
		"screenshots": len(d.Screenshots),
	})

	details := &catalog.AssetDetails{}

	if d.TrailerURL != "" {
		size, err := e.fetchAsset(ctx, mgr, d.TrailerURL, code+"_trailer.mp4")
		details.Trailer = err == nil
		e.logAsset("trailer", d.TrailerURL, size, err)
	}

	if d.ThumbnailURL != "" {
		if strings.Contains(d.ThumbnailURL, placeholderThumb) {
			e.logger.WarnWithFields("skipping placeholder thumbnail", map[string]interface{}{
				"video_code": code,
			})
		} else {
			size, err := e.fetchAsset(ctx, mgr, d.ThumbnailURL, code+"_thumbnail.jpg")
			details.Thumbnail = err == nil
			e.logAsset("thumbnail", d.ThumbnailURL, size, err)
		}
	}

	jobs := make([]screenshotJob, len(d.Screenshots))
	for i, u := range d.Screenshots {
		jobs[i] = screenshotJob{
			Index: i,
			URL:   u,
			Rel:   filepath.Join("screenshots", fmt.Sprintf("%s_screenshot_%d.jpg", code, i+1)),
		}
	}

	pool := newWorkerPool(e.workers, func(ctx context.Context, job screenshotJob) (int64, error) {
		return e.fetchAsset(ctx, mgr, job.URL, job.Rel)
	}, e.logger)

	successful := 0
	for _, res := range pool.Process(ctx, jobs) {
		sr := catalog.ScreenshotResult{
			URL:     res.Job.URL,
			Success: res.Success,
		}
		if res.Success {
			sr.Path = filepath.Join(baseDir, res.Job.Rel)
			successful++
		}
		details.Screenshots = append(details.Screenshots, sr)
	}

	details.Summary = catalog.Summary{
		Actress:               sanitized,
		VideoCode:             code,
		Directory:             baseDir,
		TotalScreenshots:      len(d.Screenshots),
		SuccessfulScreenshots: successful,
	}

	e.logger.InfoWithFields("download summary", map[string]interface{}{
		"video_code":  code,
		"trailer":     details.Trailer,
		"thumbnail":   details.Thumbnail,
		"screenshots": fmt.Sprintf("%d/%d", successful, len(d.Screenshots)),
	})

	return details, nil
}

// fetchAsset downloads one file, paced by the shared limiter, and writes
// it atomically under the manager's directory. Returns the byte count.
func (e *Engine) fetchAsset(ctx context.Context, mgr *storage.Manager, rawURL, rel string) (int64, error) {
	u := e.resolve(rawURL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return 0, fmt.Errorf("invalid URL scheme: %s", u)
	}

	e.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Referer", e.baseURL+"/")
	req.Header.Set("Accept", "*/*")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}
	if resp.ContentLength == 0 {
		return 0, fmt.Errorf("empty content from %s", u)
	}

	counter := &countingReader{r: resp.Body}
	if err := mgr.SaveAsset(counter, rel); err != nil {
		return 0, err
	}
	if counter.n == 0 {
		return 0, fmt.Errorf("empty content from %s", u)
	}

	return counter.n, nil
}

// resolve converts site-relative asset locators to absolute URLs.
func (e *Engine) resolve(u string) string {
	if strings.HasPrefix(u, "/") {
		return e.baseURL + u
	}
	return u
}

func (e *Engine) logAsset(kind, url string, size int64, err error) {
	if err != nil {
		e.logger.WarnWithFields(kind+" download failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return
	}
	e.logger.DebugWithFields(kind+" downloaded", map[string]interface{}{
		"url":  url,
		"size": sanitize.HumanSize(size),
	})
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
