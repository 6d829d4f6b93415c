package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aeo-audit/backend/extractor"
)

// Renderer talks to an external browser-rendering service that executes
// JavaScript and returns the settled DOM. The service endpoint is configured
// via RENDER_SERVICE_URL; without it every render attempt fails immediately
// and callers fall back to the plain HTTP result.
type Renderer struct {
	endpoint string
	client   *http.Client
}

func NewRenderer(endpoint string, timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Renderer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// renderResponse is the JSON body returned by the render service.
type renderResponse struct {
	HTML        string  `json:"html"`
	FinalURL    string  `json:"final_url"`
	StatusCode  int     `json:"status_code"`
	TTFBMs      float64 `json:"ttfb_ms"`
	DOMLoadMs   float64 `json:"dom_load_ms"`
	PageLoadMs  float64 `json:"page_load_ms"`
	FCPMs       float64 `json:"fcp_ms"`
	Error       string  `json:"error"`
}

// Fetch renders pageURL through the service. Failures are reported in the
// result's Error field, matching the HTTP fetch path.
func (r *Renderer) Fetch(ctx context.Context, pageURL string) *PageFetchResult {
	if r.endpoint == "" {
		return &PageFetchResult{
			URL:      pageURL,
			FinalURL: pageURL,
			Strategy: "render",
			Error:    "render service not configured",
		}
	}

	reqURL := fmt.Sprintf("%s/render?url=%s", r.endpoint, url.QueryEscape(pageURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return renderError(pageURL, err.Error())
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return renderError(pageURL, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return renderError(pageURL, fmt.Sprintf("render service returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return renderError(pageURL, err.Error())
	}

	var rendered renderResponse
	if err := json.Unmarshal(body, &rendered); err != nil {
		return renderError(pageURL, "invalid render service response: "+err.Error())
	}
	if rendered.Error != "" {
		return renderError(pageURL, rendered.Error)
	}

	finalURL := rendered.FinalURL
	if finalURL == "" {
		finalURL = pageURL
	}
	statusCode := rendered.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	return &PageFetchResult{
		URL:        pageURL,
		FinalURL:   finalURL,
		HTML:       rendered.HTML,
		StatusCode: statusCode,
		Strategy:   "render",
		Performance: extractor.Performance{
			TTFBMs:     rendered.TTFBMs,
			DOMLoadMs:  rendered.DOMLoadMs,
			PageLoadMs: rendered.PageLoadMs,
			FCPMs:      rendered.FCPMs,
		},
	}
}

func renderError(pageURL, msg string) *PageFetchResult {
	return &PageFetchResult{
		URL:      pageURL,
		FinalURL: pageURL,
		Strategy: "render",
		Error:    msg,
	}
}
