package models

// Product represents the details scraped from a product page
type Product struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Brand        string   `json:"brand,omitempty"`
	CategoryHint string   `json:"category_hint,omitempty"` // Raw category text found on the page
	Color        string   `json:"color,omitempty"`
	Images       []string `json:"image_paths"`
}
