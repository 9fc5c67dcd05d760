package closet

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/virtual-closet/models"
)

// Wardrobe holds the clothing items owned by one session, in insertion order
type Wardrobe struct {
	items []models.ClothingItem
}

// NewWardrobe creates an empty wardrobe
func NewWardrobe() *Wardrobe {
	return &Wardrobe{}
}

// Add stores a copy of item, assigning an ID and creation time when missing
func (w *Wardrobe) Add(item models.ClothingItem) models.ClothingItem {
	item = item.Clone()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.Tags = cleanTags(item.Tags)
	w.items = append(w.items, item)
	return item.Clone()
}

// Remove deletes the item with the given ID. Missing IDs are a no-op.
func (w *Wardrobe) Remove(id string) bool {
	i := w.index(id)
	if i < 0 {
		return false
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	return true
}

// ToggleFavorite flips the favorite flag and returns the updated item
func (w *Wardrobe) ToggleFavorite(id string) (models.ClothingItem, bool) {
	i := w.index(id)
	if i < 0 {
		return models.ClothingItem{}, false
	}
	w.items[i].Favorite = !w.items[i].Favorite
	return w.items[i].Clone(), true
}

// Get returns a copy of the item with the given ID
func (w *Wardrobe) Get(id string) (models.ClothingItem, bool) {
	i := w.index(id)
	if i < 0 {
		return models.ClothingItem{}, false
	}
	return w.items[i].Clone(), true
}

// List returns copies of every item
func (w *Wardrobe) List() []models.ClothingItem {
	return w.filter(func(models.ClothingItem) bool { return true })
}

// ListByCategory returns the items of a single category
func (w *Wardrobe) ListByCategory(category models.Category) []models.ClothingItem {
	return w.filter(func(it models.ClothingItem) bool { return it.Category == category })
}

// Search matches query case-insensitively against the name and every tag.
// A non-empty tagFilter additionally requires at least one of the item's tags
// to be in the filter set.
func (w *Wardrobe) Search(query string, tagFilter []string) []models.ClothingItem {
	q := strings.ToLower(strings.TrimSpace(query))
	wanted := make(map[string]struct{}, len(tagFilter))
	for _, t := range tagFilter {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			wanted[t] = struct{}{}
		}
	}

	return w.filter(func(it models.ClothingItem) bool {
		return matchesQuery(it, q) && matchesTags(it, wanted)
	})
}

func (w *Wardrobe) filter(keep func(models.ClothingItem) bool) []models.ClothingItem {
	out := []models.ClothingItem{}
	for _, it := range w.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

func (w *Wardrobe) index(id string) int {
	for i, it := range w.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func matchesQuery(it models.ClothingItem, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Name), q) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesTags(it models.ClothingItem, wanted map[string]struct{}) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, tag := range it.Tags {
		if _, ok := wanted[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// cleanTags trims tags and drops empties and case-insensitive duplicates
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
