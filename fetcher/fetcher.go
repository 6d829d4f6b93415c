package fetcher

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/aeo-audit/backend/extractor"
)

// PageFetchResult carries everything downstream stages need from one fetch.
// Transport failures end up in Error rather than a Go error so the audit can
// still assemble a zeroed score (a failed fetch is data, not a crash).
type PageFetchResult struct {
	URL         string                `json:"url"`
	FinalURL    string                `json:"final_url"`
	HTML        string                `json:"html"`
	StatusCode  int                   `json:"status_code"`
	Performance extractor.Performance `json:"performance"`
	Strategy    string                `json:"strategy"` // "http" or "render"
	Error       string                `json:"error,omitempty"`
}

func (r *PageFetchResult) Failed() bool {
	return r.Error != ""
}

// Domains known to serve empty shells without JavaScript. Matched on the
// registrable domain so subdomains are covered.
var jsHeavyDomains = map[string]bool{
	"medium.com":      true,
	"substack.com":    true,
	"buzzfeed.com":    true,
	"vox.com":         true,
	"healthline.com":  true,
	"webmd.com":       true,
	"mayoclinic.org":  true,
	"amazon.com":      true,
	"etsy.com":        true,
	"shopify.com":     true,
	"blogger.com":     true,
	"wordpress.com":   true,
	"wix.com":         true,
	"squarespace.com": true,
	"notion.so":       true,
	"vercel.app":      true,
	"netlify.app":     true,
	"github.io":       true,
}

// Selector picks the cheapest fetch strategy that yields usable content:
// plain HTTP first, browser rendering for known JS-heavy domains or when the
// HTTP result fails the content-quality check.
type Selector struct {
	client     *http.Client
	userAgent  string
	maxRetries int

	rendererMu  sync.Mutex
	renderer    *Renderer
	renderURL   string
}

// NewSelector creates a fetch strategy selector. renderURL points at an
// external browser-rendering service and may be empty, in which case render
// attempts fail fast and the HTTP result stands.
func NewSelector(renderURL string, timeout time.Duration) *Selector {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Selector{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent:  "Mozilla/5.0 (compatible; AEOScoreBot/1.0; +https://aeoscore.com)",
		maxRetries: 3,
		renderURL:  renderURL,
	}
}

// Fetch retrieves a page using the optimal strategy. It never returns a Go
// error; inspect PageFetchResult.Error instead.
func (s *Selector) Fetch(ctx context.Context, pageURL string) *PageFetchResult {
	if s.requiresJavaScript(pageURL) {
		log.Printf("Known JS-heavy domain for %s, rendering directly", pageURL)
		if result := s.fetchRendered(ctx, pageURL); !result.Failed() {
			return result
		}
		// Render path unavailable; HTTP is still better than nothing.
		return s.fetchHTTP(ctx, pageURL)
	}

	httpResult := s.fetchHTTP(ctx, pageURL)
	if httpResult.Failed() {
		log.Printf("HTTP fetch failed for %s: %s, retrying with renderer", pageURL, httpResult.Error)
		rendered := s.fetchRendered(ctx, pageURL)
		if !rendered.Failed() {
			return rendered
		}
		return httpResult
	}

	quality := AssessQuality(httpResult)
	if quality.Score < qualityThreshold {
		log.Printf("HTTP content quality low (%d/100, %s) for %s, retrying with renderer",
			quality.Score, strings.Join(quality.Reasons, ","), pageURL)
		rendered := s.fetchRendered(ctx, pageURL)
		if !rendered.Failed() && AssessQuality(rendered).Score > quality.Score {
			return rendered
		}
	}

	return httpResult
}

// fetchHTTP performs a plain GET with bounded retries and exponential backoff.
func (s *Selector) fetchHTTP(ctx context.Context, pageURL string) *PageFetchResult {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return errorResult(pageURL, ctx.Err().Error())
			}
		}

		result, err := s.doRequest(ctx, pageURL)
		if err == nil {
			return result
		}
		lastErr = err
		log.Printf("Fetch attempt %d failed for %s: %v", attempt+1, pageURL, err)
	}
	return errorResult(pageURL, lastErr.Error())
}

func (s *Selector) doRequest(ctx context.Context, pageURL string) (*PageFetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	ttfb := float64(time.Since(start).Milliseconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	total := float64(time.Since(start).Milliseconds())

	return &PageFetchResult{
		URL:        pageURL,
		FinalURL:   resp.Request.URL.String(),
		HTML:       string(body),
		StatusCode: resp.StatusCode,
		Strategy:   "http",
		Performance: extractor.Performance{
			TTFBMs:     ttfb,
			DOMLoadMs:  total,
			PageLoadMs: total,
		},
	}, nil
}

// fetchRendered goes through the lazily constructed render client, which is
// reused across calls on this selector.
func (s *Selector) fetchRendered(ctx context.Context, pageURL string) *PageFetchResult {
	s.rendererMu.Lock()
	if s.renderer == nil {
		s.renderer = NewRenderer(s.renderURL, s.client.Timeout)
	}
	renderer := s.renderer
	s.rendererMu.Unlock()

	return renderer.Fetch(ctx, pageURL)
}

func (s *Selector) requiresJavaScript(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && jsHeavyDomains[d] {
		return true
	}
	// Two-label parent catches hosts like user.github.io where the public
	// suffix list treats github.io itself as a suffix.
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		parent := strings.Join(parts[len(parts)-2:], ".")
		if jsHeavyDomains[parent] {
			return true
		}
	}
	return jsHeavyDomains[host]
}

func errorResult(pageURL, errMsg string) *PageFetchResult {
	return &PageFetchResult{
		URL:      pageURL,
		FinalURL: pageURL,
		Strategy: "http",
		Error:    errMsg,
	}
}
