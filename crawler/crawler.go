// Package crawler discovers auditable URLs for a domain, preferring the
// sitemap and falling back to a bounded same-host link crawl.
package crawler

import (
	"context"
	"encoding/xml"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Crawler discovers pages for a domain audit. It never leaves the starting
// host and stops at MaxPages URLs or MaxDepth link hops.
type Crawler struct {
	client   *http.Client
	MaxPages int
	MaxDepth int
}

func New(maxPages, maxDepth int) *Crawler {
	if maxPages <= 0 {
		maxPages = 10
	}
	if maxDepth <= 0 {
		maxDepth = 2
	}
	return &Crawler{
		client:   &http.Client{Timeout: 10 * time.Second},
		MaxPages: maxPages,
		MaxDepth: maxDepth,
	}
}

var sitemapPaths = []string{"/sitemap.xml", "/sitemap_index.xml", "/sitemap-index.xml"}

// URLs that are never worth auditing: auth and commerce flows plus binary
// assets.
var skipPatterns = []string{
	"/login", "/logout", "/signin", "/signup",
	"/cart", "/checkout", "/account",
	".pdf", ".jpg", ".png", ".gif", ".zip",
}

// Discover returns up to MaxPages URLs for the given base URL, sitemap first,
// link crawl as fallback. An unreachable site yields just the base URL so the
// audit can still report the fetch failure per page.
func (c *Crawler) Discover(ctx context.Context, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return []string{baseURL}
	}

	if urls := c.discoverFromSitemap(ctx, base); len(urls) > 0 {
		log.Printf("Discovered %d URLs from sitemap for %s", len(urls), base.Host)
		if len(urls) > c.MaxPages {
			urls = urls[:c.MaxPages]
		}
		return urls
	}

	log.Printf("No sitemap found for %s, crawling from %s", base.Host, baseURL)
	urls := c.crawlFromPage(ctx, base)
	if len(urls) == 0 {
		return []string{baseURL}
	}
	return urls
}

type sitemapXML struct {
	Sitemaps []sitemapLoc `xml:"sitemap"`
	URLs     []sitemapLoc `xml:"url"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

func (c *Crawler) discoverFromSitemap(ctx context.Context, base *url.URL) []string {
	root := base.Scheme + "://" + base.Host
	for _, path := range sitemapPaths {
		body, ok := c.get(ctx, root+path)
		if !ok {
			continue
		}
		urls, children := parseSitemap(body)

		// A sitemap index is flattened one level deep.
		for _, child := range children {
			if len(urls) >= c.MaxPages {
				break
			}
			if childBody, ok := c.get(ctx, child); ok {
				childURLs, _ := parseSitemap(childBody)
				urls = append(urls, childURLs...)
			}
		}
		if len(urls) > 0 {
			return filterURLs(urls, base.Host, c.MaxPages)
		}
	}
	return nil
}

func parseSitemap(body []byte) (urls []string, children []string) {
	var parsed sitemapXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, nil
	}
	for _, entry := range parsed.URLs {
		if loc := strings.TrimSpace(entry.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}
	for _, entry := range parsed.Sitemaps {
		if loc := strings.TrimSpace(entry.Loc); loc != "" {
			children = append(children, loc)
		}
	}
	return urls, children
}

// crawlFromPage is a breadth-first same-host crawl bounded by MaxPages and
// MaxDepth. Individual page failures are skipped, not fatal.
func (c *Crawler) crawlFromPage(ctx context.Context, base *url.URL) []string {
	type queueItem struct {
		url   string
		depth int
	}

	start := base.String()
	queue := []queueItem{{url: start, depth: 0}}
	visited := map[string]bool{}
	queued := map[string]bool{start: true}
	var discovered []string

	for len(queue) > 0 && len(discovered) < c.MaxPages {
		item := queue[0]
		queue = queue[1:]

		if visited[item.url] || item.depth > c.MaxDepth {
			continue
		}
		visited[item.url] = true

		body, ok := c.get(ctx, item.url)
		if !ok {
			continue
		}
		discovered = append(discovered, item.url)

		if item.depth >= c.MaxDepth {
			continue
		}
		for _, link := range extractLinks(body, item.url, base.Host) {
			if !visited[link] && !queued[link] {
				queued[link] = true
				queue = append(queue, queueItem{url: link, depth: item.depth + 1})
			}
		}
	}

	return discovered
}

func extractLinks(body []byte, currentURL, host string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}
	current, err := url.Parse(currentURL)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved, err := current.Parse(href)
		if err != nil || resolved.Host != host {
			return
		}
		resolved.Fragment = ""
		clean := resolved.String()
		if seen[clean] || shouldSkip(clean) {
			return
		}
		seen[clean] = true
		links = append(links, clean)
	})
	return links
}

func shouldSkip(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	for _, pattern := range skipPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func filterURLs(urls []string, host string, max int) []string {
	seen := map[string]bool{}
	var out []string
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Host != host {
			continue
		}
		u.Fragment = ""
		clean := u.String()
		if seen[clean] || shouldSkip(clean) {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
		if len(out) >= max {
			break
		}
	}
	return out
}

func (c *Crawler) get(ctx context.Context, pageURL string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AEOScoreBot/1.0)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return body, true
}
