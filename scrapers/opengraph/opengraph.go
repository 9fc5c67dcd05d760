package opengraph

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/scrapers/base"
)

// OpenGraphScraper reads the metadata most shops publish for link previews:
// Open Graph tags, schema.org Product JSON-LD and breadcrumbs
type OpenGraphScraper struct {
	*base.BaseScraper
}

func NewOpenGraphScraper(b *base.BaseScraper) *OpenGraphScraper {
	if b == nil {
		b = base.NewBaseScraper()
	}
	return &OpenGraphScraper{BaseScraper: b}
}

func (s *OpenGraphScraper) CanScrape(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *OpenGraphScraper) ScrapeProduct(ctx context.Context, pageURL string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, pageURL, func(doc *goquery.Document) bool {
		return !base.IsBlockedPage(doc) && (meta(doc, "og:title") != "" || doc.Find("h1").Length() > 0 || len(jsonLDProducts(doc)) > 0)
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc, pageURL), nil
}

// Parse extracts product details from an already fetched page
func Parse(doc *goquery.Document, pageURL string) *models.Product {
	product := &models.Product{URL: pageURL}

	var ld ldProduct
	if products := jsonLDProducts(doc); len(products) > 0 {
		ld = products[0]
	}

	product.Title = firstNonEmpty(
		meta(doc, "og:title"),
		ld.Name,
		strings.TrimSpace(doc.Find("h1").First().Text()),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	product.Description = firstNonEmpty(
		meta(doc, "og:description"),
		ld.Description,
		meta(doc, "description"),
	)
	product.Brand = firstNonEmpty(meta(doc, "product:brand"), ld.brandName())
	product.Color = firstNonEmpty(meta(doc, "product:color"), ld.Color)
	product.CategoryHint = firstNonEmpty(
		meta(doc, "product:category"),
		ld.Category,
		breadcrumb(doc),
	)

	// Collect images, deduplicated, resolved against the page URL
	seen := map[string]bool{}
	addImage := func(src string) {
		src = resolve(pageURL, strings.TrimSpace(src))
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		product.Images = append(product.Images, src)
	}
	doc.Find(`meta[property="og:image"], meta[property="og:image:url"]`).Each(func(i int, sel *goquery.Selection) {
		addImage(sel.AttrOr("content", ""))
	})
	for _, img := range ld.images() {
		addImage(img)
	}

	return product
}

type ldProduct struct {
	Type        interface{}     `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
	Brand       json.RawMessage `json:"brand"`
	Image       json.RawMessage `json:"image"`
}

func (p ldProduct) isProduct() bool {
	switch t := p.Type.(type) {
	case string:
		return t == "Product"
	case []interface{}:
		for _, v := range t {
			if v == "Product" {
				return true
			}
		}
	}
	return false
}

func (p ldProduct) brandName() string {
	var name string
	if json.Unmarshal(p.Brand, &name) == nil {
		return name
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(p.Brand, &obj) == nil {
		return obj.Name
	}
	return ""
}

func (p ldProduct) images() []string {
	var one string
	if json.Unmarshal(p.Image, &one) == nil {
		return []string{one}
	}
	var many []string
	if json.Unmarshal(p.Image, &many) == nil {
		return many
	}
	return nil
}

// jsonLDProducts finds schema.org Product objects, including ones nested in @graph
func jsonLDProducts(doc *goquery.Document) []ldProduct {
	var out []ldProduct
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := []byte(strings.TrimSpace(sel.Text()))

		var candidates []ldProduct
		var single ldProduct
		var graph struct {
			Graph []ldProduct `json:"@graph"`
		}
		switch {
		case json.Unmarshal(raw, &candidates) == nil:
		case json.Unmarshal(raw, &graph) == nil && len(graph.Graph) > 0:
			candidates = graph.Graph
		case json.Unmarshal(raw, &single) == nil:
			candidates = []ldProduct{single}
		}

		for _, c := range candidates {
			if c.isProduct() {
				out = append(out, c)
			}
		}
	})
	return out
}

func breadcrumb(doc *goquery.Document) string {
	var parts []string
	doc.Find(`nav[aria-label="breadcrumb"] a, .breadcrumb a, .breadcrumbs a`).Each(func(i int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " > ")
}

func meta(doc *goquery.Document, key string) string {
	sel := doc.Find(`meta[property="` + key + `"]`).First()
	if sel.Length() == 0 {
		sel = doc.Find(`meta[name="` + key + `"]`).First()
	}
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func resolve(pageURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
