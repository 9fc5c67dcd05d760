package models

import (
	"fmt"
	"strings"
	"time"
)

// Category groups wardrobe items by where they are worn
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Categories lists every valid category in display order
var Categories = []Category{CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories}

// ParseCategory converts user input into a Category, ignoring case and surrounding spaces
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ClothingItem represents a single clothing asset in a user's wardrobe
type ClothingItem struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Category  Category  `bson:"category" json:"category"`
	ImageURL  string    `bson:"image_url" json:"image_url"`
	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Favorite  bool      `bson:"favorite" json:"favorite"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	SourceURL string    `bson:"source_url,omitempty" json:"source_url,omitempty"` // Product page the item was imported from
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Clone returns a copy that shares no memory with the receiver
func (c ClothingItem) Clone() ClothingItem {
	if c.Tags != nil {
		c.Tags = append([]string(nil), c.Tags...)
	}
	return c
}

// ClosetStats summarizes a wardrobe for the dashboard
type ClosetStats struct {
	TotalItems    int `json:"total_items"`
	TotalOutfits  int `json:"total_outfits"`
	FavoriteItems int `json:"favorite_items"`
	RecentlyAdded int `json:"recently_added"`
}
