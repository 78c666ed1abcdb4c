package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"

	"github.com/go-playground/validator/v10"

	"trailerdl/internal/scrape"
	"trailerdl/pkg/catalog"
	"trailerdl/pkg/logger"
)

// CatalogEngine produces video listings and detail pages.
type CatalogEngine interface {
	SearchVideos(ctx context.Context, name string, page int) ([]catalog.Video, error)
	VideoDetails(ctx context.Context, videoURL string) (*scrape.Details, error)
}

// AssetEngine downloads a video's assets.
type AssetEngine interface {
	DownloadAssets(ctx context.Context, d *scrape.Details, actressName string) (*catalog.AssetDetails, error)
}

// ScrapeRunner backs the raw scrape dump endpoint.
type ScrapeRunner interface {
	Run(ctx context.Context) (json.RawMessage, error)
}

// Handler serves the catalog API.
type Handler struct {
	engine    CatalogEngine
	assets    AssetEngine
	scraper   ScrapeRunner
	validator *validator.Validate
	logger    logger.Logger
}

// NewHandler creates a Handler with the provided collaborators.
func NewHandler(engine CatalogEngine, assets AssetEngine, scraper ScrapeRunner, log logger.Logger) *Handler {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Handler{
		engine:    engine,
		assets:    assets,
		scraper:   scraper,
		validator: validator.New(),
		logger:    log,
	}
}

type searchRequest struct {
	ActressName string `json:"actress_name" validate:"required"`
	Page        int    `json:"page"`
}

type downloadRequest struct {
	VideoURL    string `json:"video_url" validate:"required"`
	ActressName string `json:"actress_name" validate:"required"`
}

type randomDownloadRequest struct {
	ActressName string `json:"actress_name" validate:"required"`
}

// Search handles POST /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Actress name is required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Actress name is required")
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	videos, err := h.engine.SearchVideos(ctx, req.ActressName, req.Page)
	if err != nil {
		h.logger.WithError(err).Error("search failed")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog.SearchResponse{
		Success: true,
		Videos:  videos,
		Page:    req.Page,
	})
}

// Download handles POST /download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Video URL and actress name are required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Video URL and actress name are required")
		return
	}

	details, err := h.engine.VideoDetails(ctx, req.VideoURL)
	if err != nil {
		h.logger.WithError(err).Error("failed to fetch video details")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.assets.DownloadAssets(ctx, details, req.ActressName)
	if err != nil {
		h.logger.WithError(err).Error("failed to download assets")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog.DownloadResponse{
		Success: true,
		Message: "Download completed successfully",
		Details: result,
	})
}

// DownloadRandom handles POST /download_random. It re-searches the first
// listing page and picks uniformly from it, as the catalog has no "random
// video" endpoint of its own.
func (h *Handler) DownloadRandom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req randomDownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Actress name is required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeRejection(w, http.StatusBadRequest, "Actress name is required")
		return
	}

	videos, err := h.engine.SearchVideos(ctx, req.ActressName, 1)
	if err != nil {
		h.logger.WithError(err).Error("search failed")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(videos) == 0 {
		writeRejection(w, http.StatusNotFound, "No videos found for this actress")
		return
	}

	video := videos[rand.Intn(len(videos))]

	details, err := h.engine.VideoDetails(ctx, video.URL)
	if err != nil {
		h.logger.WithError(err).Error("failed to fetch video details")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.assets.DownloadAssets(ctx, details, req.ActressName)
	if err != nil {
		h.logger.WithError(err).Error("failed to download assets")
		writeRejection(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog.DownloadResponse{
		Success:    true,
		Message:    "Random video download completed successfully",
		VideoTitle: video.Title,
		Details:    result,
	})
}

// Scrape handles GET /api/scrape: a raw JSON dump from the scrape
// collaborator, no envelope, no error taxonomy beyond the status code.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	raw, err := h.scraper.Run(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("scrape run failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRejection writes the error envelope the client's gateway
// understands: success=false plus a human-readable error field.
func writeRejection(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
