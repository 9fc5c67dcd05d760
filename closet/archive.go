package closet

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/virtual-closet/models"
)

// ErrEmptyOutfitName is returned when saving an outfit without a name
var ErrEmptyOutfitName = errors.New("outfit name is required")

// Archive holds the outfits saved during a session, in save order
type Archive struct {
	outfits []models.Outfit
}

// NewArchive creates an empty archive
func NewArchive() *Archive {
	return &Archive{}
}

// Save captures a value copy of snapshot as a new outfit. Later changes to the
// canvas or the wardrobe never reach the saved outfit.
func (a *Archive) Save(name string, snapshot []models.PlacedItem, occasion, season string) (models.Outfit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Outfit{}, ErrEmptyOutfitName
	}

	items := make([]models.PlacedItem, len(snapshot))
	for i, p := range snapshot {
		items[i] = p.Clone()
	}

	outfit := models.Outfit{
		ID:        uuid.NewString(),
		Name:      name,
		Items:     items,
		Occasion:  strings.TrimSpace(occasion),
		Season:    strings.TrimSpace(season),
		Thumbnail: thumbnail(items),
		CreatedAt: time.Now(),
	}
	a.outfits = append(a.outfits, outfit)
	return outfit.Clone(), nil
}

// Load re-materializes a saved outfit as canvas placements. Every placement
// gets a fresh ID so loading twice never aliases; layout fields are kept and
// missing ones defaulted.
func (a *Archive) Load(id string) ([]models.PlacedItem, bool) {
	i := a.index(id)
	if i < 0 {
		return nil, false
	}
	saved := a.outfits[i].Items
	items := make([]models.PlacedItem, len(saved))
	for j, p := range saved {
		p = NormalizePlacement(p)
		p.ID = uuid.NewString()
		items[j] = p
	}
	return items, true
}

// Delete removes a saved outfit
func (a *Archive) Delete(id string) bool {
	i := a.index(id)
	if i < 0 {
		return false
	}
	a.outfits = append(a.outfits[:i], a.outfits[i+1:]...)
	return true
}

// ToggleFavorite flips the favorite flag, the only mutable field of an outfit
func (a *Archive) ToggleFavorite(id string) (models.Outfit, bool) {
	i := a.index(id)
	if i < 0 {
		return models.Outfit{}, false
	}
	a.outfits[i].Favorite = !a.outfits[i].Favorite
	return a.outfits[i].Clone(), true
}

// Get returns a copy of one outfit
func (a *Archive) Get(id string) (models.Outfit, bool) {
	i := a.index(id)
	if i < 0 {
		return models.Outfit{}, false
	}
	return a.outfits[i].Clone(), true
}

// List returns copies of every outfit in save order
func (a *Archive) List() []models.Outfit {
	out := make([]models.Outfit, len(a.outfits))
	for i, o := range a.outfits {
		out[i] = o.Clone()
	}
	return out
}

// Len returns the number of saved outfits
func (a *Archive) Len() int {
	return len(a.outfits)
}

func (a *Archive) index(id string) int {
	for i, o := range a.outfits {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// thumbnail picks the image of the top-most placement
func thumbnail(items []models.PlacedItem) string {
	best := -1
	for i, p := range items {
		if best < 0 || p.ZIndex >= items[best].ZIndex {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return items[best].Item.ImageURL
}
