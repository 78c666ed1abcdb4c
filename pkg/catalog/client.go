package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"trailerdl/pkg/logger"
)

// ErrorKind classifies gateway failures
type ErrorKind string

const (
	// ErrorKindTransport covers network failures and undecodable responses
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindRejected covers responses the collaborator answered with success=false
	ErrorKindRejected ErrorKind = "rejected"
)

// defaultRejectionDetail is used when a rejected response carries no error field
const defaultRejectionDetail = "Unknown error occurred"

// GatewayError represents a failed exchange with the catalog API
type GatewayError struct {
	Kind   ErrorKind
	Detail string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("catalog %s error: %s", e.Kind, e.Detail)
}

// Client is the HTTP gateway to the catalog API. Each logical operation
// issues exactly one POST exchange; there is no retry at this layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new catalog API client. The timeout bounds every
// exchange; expiry surfaces as a transport error.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  log,
	}
}

// Search fetches one page of results for a performer name.
func (c *Client) Search(name string, page int) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.postJSON("/search", SearchRequest{ActressName: name, Page: page}, &resp); err != nil {
		return nil, err
	}
	if err := c.checkEnvelope(resp.Success, resp.Error); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download triggers a download of a specific video's assets.
func (c *Client) Download(videoURL, name string) (*DownloadResponse, error) {
	var resp DownloadResponse
	if err := c.postJSON("/download", DownloadRequest{VideoURL: videoURL, ActressName: name}, &resp); err != nil {
		return nil, err
	}
	if err := c.checkEnvelope(resp.Success, resp.Error); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadRandom triggers a download of a random video for a performer.
func (c *Client) DownloadRandom(name string) (*DownloadResponse, error) {
	var resp DownloadResponse
	if err := c.postJSON("/download_random", RandomDownloadRequest{ActressName: name}, &resp); err != nil {
		return nil, err
	}
	if err := c.checkEnvelope(resp.Success, resp.Error); err != nil {
		return nil, err
	}
	return &resp, nil
}

// postJSON performs one POST exchange and decodes the JSON reply into target.
// Error replies arrive with non-2xx status codes but still carry a JSON body,
// so the body is decoded regardless of status; the success flag decides.
func (c *Client) postJSON(path string, payload interface{}, target interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &GatewayError{
			Kind:   ErrorKindTransport,
			Detail: fmt.Sprintf("failed to encode request: %v", err),
		}
	}

	url := c.baseURL + path
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &GatewayError{
			Kind:   ErrorKindTransport,
			Detail: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	req.Header.Set("Content-Type", "application/json")

	callID := uuid.NewString()
	req.Header.Set("X-Request-ID", callID)

	start := time.Now()
	c.logger.DebugWithFields("sending catalog request", map[string]interface{}{
		"call_id": callID,
		"url":     url,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("catalog request failed", map[string]interface{}{
			"call_id":  callID,
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return &GatewayError{
			Kind:   ErrorKindTransport,
			Detail: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{
			Kind:   ErrorKindTransport,
			Detail: fmt.Sprintf("failed to read response body: %v", err),
		}
	}

	if err := json.Unmarshal(data, target); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse catalog response", map[string]interface{}{
			"call_id":      callID,
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return &GatewayError{
			Kind:   ErrorKindTransport,
			Detail: fmt.Sprintf("failed to parse JSON: %v", err),
		}
	}

	c.logger.DebugWithFields("catalog request completed", map[string]interface{}{
		"call_id":  callID,
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return nil
}

// checkEnvelope turns a success=false reply into a rejection error.
// The payload shape is not validated beyond the flag.
func (c *Client) checkEnvelope(success bool, detail string) error {
	if success {
		return nil
	}
	if detail == "" {
		detail = defaultRejectionDetail
	}
	return &GatewayError{
		Kind:   ErrorKindRejected,
		Detail: detail,
	}
}
