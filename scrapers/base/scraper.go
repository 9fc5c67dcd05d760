package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client *http.Client
	// BrowserFallback retries with headless Chrome when plain HTTP yields an
	// invalid page
	BrowserFallback bool
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper() *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// FetchDocument fetches the URL over HTTP and, when enabled, falls back to a
// headless browser if the validator rejects the page
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator func(*goquery.Document) bool) (*goquery.Document, error) {
	logger := zap.L().With(zap.String("url", url))

	// Strategy 1: HTTP Client (Fastest)
	doc, err := b.FetchDocumentHTTP(ctx, url)
	if err == nil {
		if validator(doc) {
			logger.Debug("scraper: HTTP success")
			return doc, nil
		}
		logger.Debug("scraper: HTTP yielded invalid content")
	} else {
		logger.Debug("scraper: HTTP failed", zap.Error(err))
	}

	if !b.BrowserFallback {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("page at %s does not look like a product page", url)
	}

	// Strategy 2: ChromeDP (Headless)
	doc, err = b.FetchDocumentChromeDP(ctx, url)
	if err == nil && validator(doc) {
		logger.Debug("scraper: ChromeDP success")
		return doc, nil
	}
	if err != nil {
		logger.Debug("scraper: ChromeDP failed", zap.Error(err))
	}

	return nil, fmt.Errorf("all strategies failed for %s", url)
}

// IsValidDocument rejects bot-check pages and near-empty bodies
func IsValidDocument(doc *goquery.Document) bool {
	if IsBlockedPage(doc) {
		return false
	}
	title := strings.TrimSpace(doc.Find("title").Text())
	body := strings.TrimSpace(doc.Find("body").Text())
	return title != "" || body != ""
}

// IsBlockedPage reports a robot check or access-denied page
func IsBlockedPage(doc *goquery.Document) bool {
	lowerTitle := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	return strings.Contains(lowerTitle, "robot check") ||
		strings.Contains(lowerTitle, "captcha") ||
		strings.Contains(lowerTitle, "access denied")
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Common headers to mimic a real browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
