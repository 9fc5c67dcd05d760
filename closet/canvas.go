package closet

import (
	"sort"

	"github.com/google/uuid"
	"github.com/raushankrgupta/virtual-closet/models"
)

// Canvas is the live outfit composition surface. Operations on unknown
// placement IDs are no-ops and report false: a drag that finishes after the
// item was removed must not fail the session.
type Canvas struct {
	items  []models.PlacedItem // insertion order breaks z-order ties
	width  float64
	height float64
}

// NewCanvas creates an empty canvas with no registered bounds
func NewCanvas() *Canvas {
	return &Canvas{}
}

// SetBounds registers the visible canvas size. Non-positive sizes unregister it.
func (c *Canvas) SetBounds(width, height float64) {
	if width <= 0 || height <= 0 {
		c.width, c.height = 0, 0
		return
	}
	c.width, c.height = width, height
}

// Bounds returns the registered size and whether one is registered
func (c *Canvas) Bounds() (width, height float64, ok bool) {
	return c.width, c.height, c.width > 0 && c.height > 0
}

// AddToCanvas places a copy of item at the default position. The same wardrobe
// item may be placed any number of times; each placement gets its own ID.
func (c *Canvas) AddToCanvas(item models.ClothingItem) models.PlacedItem {
	p := models.PlacedItem{
		ID:       uuid.NewString(),
		Item:     item.Clone(),
		Position: &models.Position{X: DefaultX, Y: DefaultY},
		ZIndex:   LayerPriority(item.Category),
		Scale:    DefaultScale,
		Rotation: DefaultRotation,
	}
	c.items = append(c.items, p)
	return p.Clone()
}

// Move sets the position, clamped so the item's footprint stays on the canvas
func (c *Canvas) Move(id string, x, y float64) (models.PlacedItem, bool) {
	if _, _, ok := c.Bounds(); !ok {
		return models.PlacedItem{}, false
	}
	return c.update(id, func(p *models.PlacedItem) {
		size := ItemFootprint * p.Scale
		p.Position = &models.Position{
			X: clamp(x, 0, max(0, c.width-size)),
			Y: clamp(y, 0, max(0, c.height-size)),
		}
	})
}

// Scale adds delta to the current scale, clamped to [MinScale, MaxScale]
func (c *Canvas) Scale(id string, delta float64) (models.PlacedItem, bool) {
	return c.update(id, func(p *models.PlacedItem) {
		p.Scale = clampScale(p.Scale + delta)
	})
}

// Rotate turns the item a quarter turn clockwise
func (c *Canvas) Rotate(id string) (models.PlacedItem, bool) {
	return c.update(id, func(p *models.PlacedItem) {
		p.Rotation = (p.Rotation + RotationStep) % 360
	})
}

// BringToFront gives the item a z-order above every other placement,
// including its own current one
func (c *Canvas) BringToFront(id string) (models.PlacedItem, bool) {
	top := c.maxZIndex()
	return c.update(id, func(p *models.PlacedItem) {
		p.ZIndex = top + 1
	})
}

// Remove deletes a placement
func (c *Canvas) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Clear removes every placement. Bounds stay registered.
func (c *Canvas) Clear() {
	c.items = nil
}

// Get returns a copy of one placement
func (c *Canvas) Get(id string) (models.PlacedItem, bool) {
	i := c.index(id)
	if i < 0 {
		return models.PlacedItem{}, false
	}
	return c.items[i].Clone(), true
}

// Len returns the number of placements
func (c *Canvas) Len() int {
	return len(c.items)
}

// Items returns the placements in render order: ascending z-order, ties in
// insertion order
func (c *Canvas) Items() []models.PlacedItem {
	out := c.Snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// Snapshot returns deep copies of the placements in insertion order
func (c *Canvas) Snapshot() []models.PlacedItem {
	out := make([]models.PlacedItem, len(c.items))
	for i, p := range c.items {
		out[i] = p.Clone()
	}
	return out
}

// Replace discards the current placements and installs normalized copies of items
func (c *Canvas) Replace(items []models.PlacedItem) {
	c.items = make([]models.PlacedItem, 0, len(items))
	for _, p := range items {
		c.items = append(c.items, NormalizePlacement(p))
	}
}

func (c *Canvas) update(id string, fn func(*models.PlacedItem)) (models.PlacedItem, bool) {
	i := c.index(id)
	if i < 0 {
		return models.PlacedItem{}, false
	}
	fn(&c.items[i])
	return c.items[i].Clone(), true
}

func (c *Canvas) maxZIndex() int {
	top := 0
	for _, p := range c.items {
		if p.ZIndex > top {
			top = p.ZIndex
		}
	}
	return top
}

func (c *Canvas) index(id string) int {
	for i, p := range c.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

