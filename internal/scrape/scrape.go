// Package scrape extracts video listings and detail pages from the remote
// catalog site. The extraction is site-specific and regex-based; the rest
// of the system only depends on the Video/Details shapes it produces.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"trailerdl/pkg/catalog"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
)

// Details holds everything needed to download one video's assets.
type Details struct {
	VideoCode    string
	Title        string
	TrailerURL   string
	ThumbnailURL string
	Screenshots  []string
}

var (
	// One listing card: link, thumbnail, title.
	listingRe = regexp.MustCompile(`(?s)<a[^>]+class="[^"]*video-card[^"]*"[^>]+href="([^"]+)"[^>]*>.*?<img[^>]+src="([^"]+)"[^>]*alt="([^"]*)"`)

	trailerRe    = regexp.MustCompile(`<source[^>]+src="([^"]+\.mp4[^"]*)"`)
	ogImageRe    = regexp.MustCompile(`<meta[^>]+property="og:image"[^>]+content="([^"]+)"`)
	screenshotRe = regexp.MustCompile(`<img[^>]+class="[^"]*screenshot[^"]*"[^>]+src="([^"]+)"`)
	titleRe      = regexp.MustCompile(`<title>([^<]+)</title>`)
)

// Engine fetches and parses catalog pages.
type Engine struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	pageSize   int
	logger     logger.Logger
}

// New creates a scraping engine from config.
func New(cfg *config.ScrapeConfig, log logger.Logger) *Engine {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Engine{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		pageSize:   cfg.PageSize,
		logger:     log,
	}
}

// SearchVideos returns one listing page for a performer name. The page
// size is the catalog's own (10); a shorter page is the catalog's way of
// signalling the end of the result set, so it is passed through untouched.
func (e *Engine) SearchVideos(ctx context.Context, name string, page int) ([]catalog.Video, error) {
	if page < 1 {
		page = 1
	}

	searchURL := fmt.Sprintf("%s/search?keyword=%s&page=%d", e.baseURL, url.QueryEscape(name), page)
	body, err := e.fetchHTML(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	matches := listingRe.FindAllStringSubmatch(body, e.pageSize)
	videos := make([]catalog.Video, 0, len(matches))
	for _, m := range matches {
		videos = append(videos, catalog.Video{
			URL:       e.absolute(m[1]),
			Thumbnail: e.absolute(m[2]),
			Title:     strings.TrimSpace(m[3]),
		})
	}

	e.logger.DebugWithFields("parsed listing page", map[string]interface{}{
		"name":   name,
		"page":   page,
		"videos": len(videos),
	})

	return videos, nil
}

// VideoDetails fetches a video page and extracts its downloadable assets.
func (e *Engine) VideoDetails(ctx context.Context, videoURL string) (*Details, error) {
	body, err := e.fetchHTML(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	d := &Details{
		VideoCode: codeFromURL(videoURL),
	}

	if m := titleRe.FindStringSubmatch(body); m != nil {
		d.Title = strings.TrimSpace(m[1])
	}
	if m := trailerRe.FindStringSubmatch(body); m != nil {
		d.TrailerURL = e.absolute(m[1])
	}
	if m := ogImageRe.FindStringSubmatch(body); m != nil {
		d.ThumbnailURL = e.absolute(m[1])
	}
	for _, m := range screenshotRe.FindAllStringSubmatch(body, -1) {
		d.Screenshots = append(d.Screenshots, e.absolute(m[1]))
	}

	e.logger.DebugWithFields("parsed video page", map[string]interface{}{
		"url":         videoURL,
		"video_code":  d.VideoCode,
		"trailer":     d.TrailerURL != "",
		"thumbnail":   d.ThumbnailURL != "",
		"screenshots": len(d.Screenshots),
	})

	return d, nil
}

// fetchHTML performs one GET and returns the page body.
func (e *Engine) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Referer", e.baseURL+"/")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}

	return string(data), nil
}

// absolute resolves a site-relative locator against the catalog base.
func (e *Engine) absolute(u string) string {
	if strings.HasPrefix(u, "/") {
		return e.baseURL + u
	}
	return u
}

// codeFromURL derives the video code from the last path segment of a
// video page URL.
func codeFromURL(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return "unknown"
	}
	seg := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return "unknown"
	}
	return strings.ToUpper(seg)
}
