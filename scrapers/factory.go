package scrapers

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/virtual-closet/scrapers/base"
	"github.com/raushankrgupta/virtual-closet/scrapers/opengraph"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// GetScraper returns the appropriate scraper and the resolved URL
func GetScraper(ctx context.Context, url string, browserFallback bool) (Scraper, string, error) {
	// Resolve shortened URLs (e.g., amzn.in, bit.ly)
	resolvedURL, err := utils.ResolveShortenedURL(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	s, err := Find(resolvedURL, browserFallback)
	return s, resolvedURL, err
}

// Find returns the first registered scraper that accepts url
func Find(url string, browserFallback bool) (Scraper, error) {
	b := base.NewBaseScraper()
	b.BrowserFallback = browserFallback

	// Register scrapers here, most specific first
	scrapers := []Scraper{
		opengraph.NewOpenGraphScraper(b),
	}

	for _, s := range scrapers {
		if s.CanScrape(url) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no scraper found for url: %s", url)
}
